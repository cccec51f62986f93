package handler

import (
	"Postcraft/internal/pkg/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径上的正整数 ID
func pathID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, &util.ParamError{Field: name, Rule: "id"}
	}
	return id, nil
}
