package prediction

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ban/healthsense/internal/app/domains/apimodel/response"
	"ban/healthsense/internal/app/pkg/ginx"
)

// Predict godoc
// @Summary      最新读数预测（兼容接口）
// @Description  拉取遥测频道最新一条记录并返回预测类别
// @Tags         predictions
// @Produce      json
// @Success      200 {object} response.LegacyPredictionResponse
// @Failure      404 {object} ginx.Response "暂无读数"
// @Failure      502 {object} ginx.Response "遥测服务不可用"
// @Router       /predict [get]
func (h *PredictionHandler) Predict(c *gin.Context) {
	p, err := h.predictionService.PredictLatest(c.Request.Context())
	if err != nil {
		ginx.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ToLegacy(p))
}

// Latest godoc
// @Summary      最新读数预测
// @Description  拉取遥测频道最新一条记录，返回预测结果和所用读数
// @Tags         predictions
// @Produce      json
// @Success      200 {object} ginx.Response{data=response.PredictionResponse} "预测成功"
// @Failure      404 {object} ginx.Response "暂无读数"
// @Failure      422 {object} ginx.Response "读数字段无效"
// @Failure      502 {object} ginx.Response "遥测服务不可用"
// @Router       /api/v1/predictions/latest [get]
func (h *PredictionHandler) Latest(c *gin.Context) {
	p, err := h.predictionService.PredictLatest(c.Request.Context())
	if err != nil {
		ginx.HandleError(c, err)
		return
	}

	ginx.Success(c, response.FromPredictionEntity(p))
}

// Health 存活检查
func (h *PredictionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{
		Status:  "ok",
		Service: ServiceName,
		ModelID: h.predictionService.ModelID(),
	})
}
