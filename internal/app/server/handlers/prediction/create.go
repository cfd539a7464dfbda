package prediction

import (
	"github.com/gin-gonic/gin"

	"ban/healthsense/internal/app/domains/apimodel/request"
	"ban/healthsense/internal/app/domains/apimodel/response"
	"ban/healthsense/internal/app/pkg/ginx"
)

// Create godoc
// @Summary      按特征预测
// @Description  使用请求体中的五个特征直接预测，不访问遥测服务
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        request body request.CreatePredictionRequest true "特征"
// @Success      200 {object} ginx.Response{data=response.PredictionResponse} "预测成功"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      500 {object} ginx.Response "模型错误"
// @Router       /api/v1/predictions [post]
func (h *PredictionHandler) Create(c *gin.Context) {
	var req request.CreatePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	p, err := h.predictionService.PredictFeatures(c.Request.Context(), req.ToReadingEntity())
	if err != nil {
		ginx.HandleError(c, err)
		return
	}

	ginx.Success(c, response.FromPredictionEntity(p))
}
