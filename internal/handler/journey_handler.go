package handler

import (
	"net/http"
	"time"

	"github.com/arcanalog/internal/service"
	"github.com/gin-gonic/gin"
)

// GetJourneyStats 返回 Reading Journey 面板消费的聚合快照。
// 范围筛选与条目列表共用同一组查询参数，由调用方决定聚合窗口。
func (a *API) GetJourneyStats(c *gin.Context) {
	filter := service.EntryFilter{
		Context:   c.Query("context"),
		Search:    c.Query("search"),
		StartDate: parseDateQuery(c, "start"),
		EndDate:   parseDateQuery(c, "end"),
	}

	snapshot, err := a.journeys.Snapshot(currentUserID(c), filter, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to build journey stats")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetPatternAlerts 返回本月反复出现的模式告警
func (a *API) GetPatternAlerts(c *gin.Context) {
	alerts, err := a.patterns.Alerts(currentUserID(c), time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load pattern alerts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

type focusAreasPayload struct {
	FocusAreas []string `json:"focus_areas"`
}

// GetFocusAreas 返回用户声明的关注语境
func (a *API) GetFocusAreas(c *gin.Context) {
	areas, err := a.prefs.FocusAreas(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load focus areas")
		return
	}

	c.JSON(http.StatusOK, gin.H{"focus_areas": areas})
}

// UpdateFocusAreas 覆盖写入关注语境并使快照缓存失效
func (a *API) UpdateFocusAreas(c *gin.Context) {
	var payload focusAreasPayload
	if !bindJSON(c, &payload, "invalid focus areas payload") {
		return
	}

	userID := currentUserID(c)
	saved, err := a.prefs.SetFocusAreas(userID, payload.FocusAreas)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save focus areas")
		return
	}

	a.journeys.Invalidate(userID)
	c.JSON(http.StatusOK, gin.H{"focus_areas": saved})
}
