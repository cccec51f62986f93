package cron

import (
	"Postcraft/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	stalePromptJob *job.StalePromptJob
	staleSpec      string
}

func NewCronManager(stalePromptJob *job.StalePromptJob, staleSpec string) *Manager {
	if staleSpec == "" {
		staleSpec = "0 0 3 * * *"
	}
	return &Manager{
		engine:         cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		stalePromptJob: stalePromptJob,
		staleSpec:      staleSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.staleSpec, s.stalePromptJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
