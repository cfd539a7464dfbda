package domains

import (
	"ban/healthsense/internal/alertworker/domains/common"
	"ban/healthsense/internal/alertworker/domains/handlers/healthalert"
	"ban/healthsense/internal/common/model"
)

// HandlerMap 路由表（ActionType → Handler 映射）
var HandlerMap = map[string]common.HandlerServProc{
	model.ActionTypeHealthAlert: healthalert.NewHandler,
}
