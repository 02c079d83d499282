package maintenance

import (
	"context"
	"sync"
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/generate_slots"
)

// Названия фаз цикла обслуживания (метки метрик)
const (
	phaseCleanup    = "cleanup"
	phaseGeneration = "generation"
	phaseStatistics = "statistics"
)

// Config параметры фонового обслуживания горизонта
type Config struct {
	Interval         time.Duration // период между циклами
	RetentionDays    int           // сколько дней хранить прошедшие слоты
	HorizonDays      int           // целевой горизонт при регенерации
	MinHorizonDays   int           // порог, ниже которого горизонт пополняется
	FutureSlotFloor  int           // минимальное число будущих слотов на бизнес
	PerBusinessDelay time.Duration // пауза между бизнесами, размазывает нагрузку на БД
}

func (c *Config) withDefaults() Config {
	cfg := *c
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = domain.DefaultRetentionDays
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = domain.DefaultHorizonDays
	}
	if cfg.MinHorizonDays <= 0 {
		cfg.MinHorizonDays = domain.DefaultMinHorizonDays
	}
	if cfg.FutureSlotFloor <= 0 {
		cfg.FutureSlotFloor = domain.DefaultFutureSlotFloor
	}
	if cfg.PerBusinessDelay < 0 {
		cfg.PerBusinessDelay = 0
	}
	return cfg
}

// Maintainer фоновый процесс обслуживания горизонта слотов
//
// Цикл состоит из трёх фаз: очистка прошедших слотов, пополнение
// горизонта по каждому бизнесу и обновление статистики таблицы.
// Ошибка одной фазы не прерывает остальные; ошибка одного бизнеса
// не прерывает обход остальных. Циклы не накладываются: запуск при
// уже идущем цикле пропускается
type Maintainer struct {
	slotRepo       SlotRepository
	scheduleClient ScheduleStoreClient
	generator      SlotGenerator
	metrics        MetricsCollector
	timeProvider   TimeProvider
	logger         Logger
	cfg            Config

	mu             sync.Mutex
	isRunning      bool
	lastCleanup    *time.Time
	lastGeneration *time.Time
}

// NewMaintainer создает новый экземпляр Maintainer
func NewMaintainer(
	slotRepo SlotRepository,
	scheduleStoreClient ScheduleStoreClient,
	generator SlotGenerator,
	collector MetricsCollector,
	logger Logger,
	cfg Config,
) *Maintainer {
	return &Maintainer{
		slotRepo:       slotRepo,
		scheduleClient: scheduleStoreClient,
		generator:      generator,
		metrics:        collector,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		cfg:            cfg.withDefaults(),
	}
}

// Run запускает периодические циклы обслуживания до отмены контекста
// Первый цикл выполняется сразу, не дожидаясь первого тика
func (m *Maintainer) Run(ctx context.Context) {
	m.logger.Info("Maintenance: starting, interval=%s", m.cfg.Interval)

	if err := m.RunCycle(ctx); err != nil {
		m.logger.Warn("Maintenance: initial cycle: %v", err)
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Maintenance: stopped")
			return
		case <-ticker.C:
			if err := m.RunCycle(ctx); err != nil {
				m.logger.Warn("Maintenance: cycle: %v", err)
			}
		}
	}
}

// Status возвращает операционный статус обслуживания
func (m *Maintainer) Status() domain.MaintenanceStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	return domain.MaintenanceStatus{
		LastCleanup:    m.lastCleanup,
		LastGeneration: m.lastGeneration,
		IsRunning:      m.isRunning,
	}
}

// RunCycle выполняет один полный цикл обслуживания
// Возвращает ErrAlreadyRunning, если цикл уже идёт
func (m *Maintainer) RunCycle(ctx context.Context) error {
	m.mu.Lock()
	if m.isRunning {
		m.mu.Unlock()
		m.metrics.IncMaintenanceRun("skipped")
		return ErrAlreadyRunning
	}
	m.isRunning = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.isRunning = false
		m.mu.Unlock()
	}()

	started := m.timeProvider.Now()
	m.logger.Info("Maintenance: cycle started")

	failed := 0

	// 1. Очистка прошедших слотов за пределами срока хранения
	if err := m.runCleanup(ctx, started); err != nil {
		m.logger.Error("Maintenance: cleanup phase failed: %v", err)
		m.metrics.IncMaintenancePhaseError(phaseCleanup)
		failed++
	}

	// 2. Пополнение горизонта по каждому бизнесу
	if err := m.runGeneration(ctx, started); err != nil {
		m.logger.Error("Maintenance: generation phase failed: %v", err)
		m.metrics.IncMaintenancePhaseError(phaseGeneration)
		failed++
	}

	// 3. Обновление статистики таблицы слотов
	if err := m.runStatistics(ctx); err != nil {
		m.logger.Error("Maintenance: statistics phase failed: %v", err)
		m.metrics.IncMaintenancePhaseError(phaseStatistics)
		failed++
	}

	result := "ok"
	if failed > 0 {
		result = "partial"
	}
	m.metrics.IncMaintenanceRun(result)

	m.logger.Info("Maintenance: cycle finished in %s, result=%s",
		m.timeProvider.Now().Sub(started), result)

	return nil
}

func (m *Maintainer) runCleanup(ctx context.Context, now time.Time) error {
	before := now.AddDate(0, 0, -m.cfg.RetentionDays)

	deleted, err := m.slotRepo.DeleteExpired(ctx, before)
	if err != nil {
		return err
	}

	m.logger.Info("Maintenance: deleted %d slots older than %s", deleted, before.Format("2006-01-02"))

	m.mu.Lock()
	m.lastCleanup = &now
	m.mu.Unlock()
	m.metrics.SetMaintenancePhaseDone(phaseCleanup, now)

	return nil
}

func (m *Maintainer) runGeneration(ctx context.Context, now time.Time) error {
	businessIDs, err := m.scheduleClient.ListBusinessIDs(ctx)
	if err != nil {
		return err
	}

	toppedUp := 0
	failed := 0

	for i, businessID := range businessIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i > 0 && m.cfg.PerBusinessDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.cfg.PerBusinessDelay):
			}
		}

		if err := m.topUpBusiness(ctx, businessID, now, &toppedUp); err != nil {
			m.logger.Warn("Maintenance: business_id=%d top-up failed: %v", businessID, err)
			failed++
		}
	}

	m.logger.Info("Maintenance: horizon check done, businesses=%d, toppedUp=%d, failed=%d",
		len(businessIDs), toppedUp, failed)

	m.mu.Lock()
	m.lastGeneration = &now
	m.mu.Unlock()
	m.metrics.SetMaintenancePhaseDone(phaseGeneration, now)

	return nil
}

func (m *Maintainer) topUpBusiness(ctx context.Context, businessID int64, now time.Time, toppedUp *int) error {
	info, err := m.slotRepo.GetHorizonInfo(ctx, businessID, now)
	if err != nil {
		return err
	}

	if info.HorizonDays(now) >= m.cfg.MinHorizonDays && info.FutureSlotCount >= m.cfg.FutureSlotFloor {
		return nil
	}

	resp, err := m.generator.Execute(ctx, &generate_slots.Request{
		BusinessID:  businessID,
		HorizonDays: m.cfg.HorizonDays,
	})
	if err != nil {
		return err
	}

	m.metrics.AddSlotsGenerated("maintenance", resp.SlotsCreated)
	*toppedUp++

	m.logger.Info("Maintenance: regenerated business_id=%d, created=%d, deleted=%d",
		businessID, resp.SlotsCreated, resp.SlotsDeleted)

	return nil
}

func (m *Maintainer) runStatistics(ctx context.Context) error {
	if err := m.slotRepo.RefreshStatistics(ctx); err != nil {
		return err
	}

	m.metrics.SetMaintenancePhaseDone(phaseStatistics, m.timeProvider.Now())

	return nil
}
