package service

import (
	"context"
	log "log/slog"
	"time"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/util"
	"Postcraft/internal/repository"
)

type UserAdminService interface {
	ListUsers(ctx context.Context, page *dto.PageDTO) (*dto.PageResult[*dto.UserDTO], error)
	UpdateRole(ctx context.Context, adminID, userID uint64, req *dto.UpdateRoleDTO) error
	SetDisabled(ctx context.Context, adminID, userID uint64, req *dto.UpdateDisabledDTO) error
}

type userAdminServiceImpl struct {
	userRepo repository.UserRepo
	accounts *AccountHolder
}

func NewUserAdminService(userRepo repository.UserRepo, accounts *AccountHolder) UserAdminService {
	return &userAdminServiceImpl{userRepo: userRepo, accounts: accounts}
}

func (s *userAdminServiceImpl) ListUsers(ctx context.Context, page *dto.PageDTO) (*dto.PageResult[*dto.UserDTO], error) {
	if err := util.ValidateDTO(page); err != nil {
		return nil, err
	}
	page.Normalize()

	users, total, err := s.userRepo.ListUsers(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	list := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		list = append(list, toUserDTO(u))
	}
	return &dto.PageResult[*dto.UserDTO]{List: list, Total: total, Page: page.Page}, nil
}

func (s *userAdminServiceImpl) UpdateRole(ctx context.Context, adminID, userID uint64, req *dto.UpdateRoleDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return err
	}
	if err := s.checkTarget(ctx, adminID, userID); err != nil {
		return err
	}
	if _, err := s.userRepo.UpdateRole(ctx, userID, req.Role); err != nil {
		return err
	}
	s.refresh(ctx, userID)
	return nil
}

func (s *userAdminServiceImpl) SetDisabled(ctx context.Context, adminID, userID uint64, req *dto.UpdateDisabledDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return err
	}
	if err := s.checkTarget(ctx, adminID, userID); err != nil {
		return err
	}
	if _, err := s.userRepo.UpdateDisabled(ctx, userID, *req.Disabled); err != nil {
		return err
	}
	s.refresh(ctx, userID)
	return nil
}

// checkTarget 管理员不能修改自己的角色或状态
func (s *userAdminServiceImpl) checkTarget(ctx context.Context, adminID, userID uint64) error {
	if adminID == userID {
		return ErrUserSelf
	}
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

func (s *userAdminServiceImpl) refresh(ctx context.Context, userID uint64) {
	if _, err := s.accounts.Invalidate(ctx, userID); err != nil {
		s.accounts.Forget(userID)
		log.WarnContext(ctx, "refresh account state failed", "user_id", userID, "err", err)
	}
}

func toUserDTO(u *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Disabled:  u.Disabled,
		CreatedAt: u.CreatedAt.Format(time.DateTime),
	}
}
