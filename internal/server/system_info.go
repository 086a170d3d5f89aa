package server

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemInfo reports static capability descriptors plus a snapshot of the
// host the process runs on. Informational only.
func (h *Handler) SystemInfo(c echo.Context) error {
	system := map[string]interface{}{
		"platform":   runtime.GOOS,
		"go_version": runtime.Version(),
	}
	if count, err := cpu.Counts(true); err == nil {
		system["cpu_count"] = count
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		system["memory_total"] = fmt.Sprintf("%.2f GB", float64(vm.Total)/(1<<30))
		system["memory_available"] = fmt.Sprintf("%.2f GB", float64(vm.Available)/(1<<30))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"system": system,
		"features": []string{
			"PDF Document Processing",
			"Semantic Text Chunking",
			"Vector Similarity Search",
			"LLM Integration",
			"Confidence Scoring",
			"Response Caching",
			"Performance Metrics",
			"Real-time Processing",
		},
		"capabilities": map[string]interface{}{
			"supported_formats":         []string{"PDF"},
			"max_document_size":         "50MB",
			"max_questions_per_request": 20,
			"response_time_target":      "< 5 seconds",
			"accuracy_target":           "> 90%",
		},
		"hackathon_features": []string{
			"Advanced Error Handling",
			"Performance Optimization",
			"Caching System",
			"Confidence Scoring",
			"Detailed Analytics",
		},
	})
}
