package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"pragmaprofe_backend/internals/configs"
	"pragmaprofe_backend/internals/features/curriculum/oa/service"
	helper "pragmaprofe_backend/internals/helpers"
)

/*
	========================================================
	  Controller
========================================================
*/

type OAController struct {
	Client *service.OAClient
	Cache  *service.OACache
}

func NewOAController() *OAController {
	return &OAController{
		Client: service.NewOAClient(configs.GetEnv("CURRICULUM_API_URL", "https://api.curriculumnacional.cl")),
		Cache:  service.NewOACache(service.DefaultCacheTTL),
	}
}

/* ===================== GET /api/public/curriculum/oa ===================== */

// Proxy del API de currículum con cache TTL. Upstream caído o ilegible →
// mock fijo filtrado por unidad; este endpoint nunca devuelve 5xx.
func (ctrl *OAController) GetOA(c *fiber.Ctx) error {
	subject := c.Query("asignatura", c.Query("subject"))
	level := c.Query("nivel", c.Query("level"))
	unit := c.Query("unidad", c.Query("unit"))

	if subject == "" {
		return fiber.NewError(fiber.StatusBadRequest, "asignatura requerida")
	}

	key := service.CacheKey(subject, level, unit)
	if items, ok := ctrl.Cache.Get(key); ok {
		c.Set("X-Cache", "HIT")
		return helper.JsonOK(c, "OK", items)
	}

	items, err := ctrl.Client.Fetch(c.Context(), subject, level, unit)
	if err != nil {
		log.Println("[WARN] currículum degradado a mock:", err)
		c.Set("X-Cache", "MISS")
		return helper.JsonOK(c, "OK", service.MockOAs(unit))
	}

	ctrl.Cache.Set(key, items)
	c.Set("X-Cache", "MISS")
	return helper.JsonOK(c, "OK", items)
}

/* ===================== POST /api/a/curriculum/cache/flush ===================== */

func (ctrl *OAController) FlushCache(c *fiber.Ctx) error {
	n := ctrl.Cache.Flush()
	log.Printf("🧹 Cache de currículum vaciado (%d entradas)\n", n)
	return helper.JsonOK(c, "Cache vaciado", fiber.Map{"flushed": n})
}
