package handler

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"social-content-service/internal/app/service"
	"social-content-service/internal/domain"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	stats      *service.Stats
	validation *service.ValidationService
	health     HealthReporter
	logger     *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(stats *service.Stats, validation *service.ValidationService, health HealthReporter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		stats:      stats,
		validation: validation,
		health:     health,
		logger:     logger,
	}
}

type dashboardRow struct {
	Platform    string
	DisplayName string
	TitleMax    int
	Tags        string
	Stats       service.PlatformStats
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	snapshot := h.stats.Snapshot()

	rows := make([]dashboardRow, 0, len(domain.AllPlatforms))
	for _, p := range h.validation.Platforms() {
		rules, err := h.validation.Rules(p)
		if err != nil {
			h.logger.Warn("dashboard skipped platform", zap.String("platform", string(p)), zap.Error(err))
			continue
		}
		rows = append(rows, dashboardRow{
			Platform:    string(p),
			DisplayName: p.DisplayName(),
			TitleMax:    rules.TitleMaxLength,
			Tags:        tagRange(rules),
			Stats:       snapshot.Platforms[p],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Stats.TotalRequests > rows[j].Stats.TotalRequests
	})

	producer := "unknown"
	if h.health != nil {
		if s := h.health.Status(); !s.CheckedAt.IsZero() {
			producer = "down"
			if s.Healthy {
				producer = "up"
			}
		}
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":          "Social Content Dashboard",
		"Stats":          snapshot,
		"SuccessPercent": snapshot.OverallSuccessRate * 100,
		"Platforms":      rows,
		"Producer":       producer,
	}, "layouts/base")
}

func tagRange(r domain.PlatformRules) string {
	if r.TagMinCount == r.TagMaxCount {
		return strconv.Itoa(r.TagMaxCount)
	}
	return strconv.Itoa(r.TagMinCount) + "-" + strconv.Itoa(r.TagMaxCount)
}
