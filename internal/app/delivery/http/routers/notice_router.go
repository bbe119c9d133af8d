package routers

import (
	"carelog-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachNoticeRoutes(router chi.Router, noticeController *controllers.NoticeController) {
	router.Get("/", noticeController.FindNotice)
}
