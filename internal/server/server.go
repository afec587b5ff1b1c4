// Package server exposes the detection pipeline over an HTTP JSON API,
// including an MJPEG camera feed for live monitoring.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	lightdetector "github.com/menta2k/light-detector"
	"github.com/menta2k/light-detector/internal/config"
	"github.com/menta2k/light-detector/internal/monitor"
	"github.com/menta2k/light-detector/pkg/camera"
)

// streamInterval paces the MJPEG feed so file-backed sources do not spin.
const streamInterval = 100 * time.Millisecond

// Server wires the detector and monitor into HTTP handlers.
type Server struct {
	echo     *echo.Echo
	detector *lightdetector.Detector
	monitor  *monitor.Monitor
	cfg      config.ServerConfig

	mu    sync.Mutex
	debug bool
}

// New creates the HTTP server and registers all API routes.
func New(detector *lightdetector.Detector, mon *monitor.Monitor, cfg config.ServerConfig) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		detector: detector,
		monitor:  mon,
		cfg:      cfg,
		debug:    cfg.DebugMode,
	}

	api := e.Group("/api")
	api.GET("/status", s.handleStatus)
	api.GET("/start_camera", s.handleStartCamera)
	api.GET("/stop_camera", s.handleStopCamera)
	api.GET("/detect_once", s.handleDetectOnce)
	api.GET("/camera_feed", s.handleCameraFeed)
	api.GET("/light_status", s.handleLightStatus)
	api.GET("/debug_info", s.handleDebugInfo)
	api.GET("/detection_details", s.handleDetectionDetails)
	api.GET("/real_time_data", s.handleRealTimeData)
	api.GET("/toggle_debug", s.handleToggleDebug)

	return s
}

// Start begins serving on the configured host and port. It blocks until the
// server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) debugMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debug
}

func (s *Server) cameraStatus() echo.Map {
	return echo.Map{
		"monitoring": s.monitor.Running(),
	}
}

func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"camera_status": s.cameraStatus(),
		"latest_result": s.monitor.Latest(),
		"timestamp":     time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleStartCamera(c echo.Context) error {
	if err := s.monitor.Start(); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"status": "Camera already running"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "Camera started successfully"})
}

func (s *Server) handleStopCamera(c echo.Context) error {
	s.monitor.Stop()
	return c.JSON(http.StatusOK, echo.Map{"status": "Camera stopped"})
}

func (s *Server) handleDetectOnce(c echo.Context) error {
	result, err := s.monitor.DetectOnce(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// handleCameraFeed streams frames as multipart/x-mixed-replace, the classic
// MJPEG format browsers render as live video in an <img> tag.
func (s *Server) handleCameraFeed(c echo.Context) error {
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "multipart/x-mixed-replace; boundary=frame")
	resp.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for {
		frame, err := s.monitor.CaptureFrame(ctx)
		if err != nil {
			return nil
		}

		data, err := camera.EncodeJPEG(frame, s.cfg.StreamQuality)
		if err != nil {
			return nil
		}

		if _, err := fmt.Fprintf(resp,
			"--frame\r\nContent-Type: image/jpeg\r\n\r\n"); err != nil {
			return nil
		}
		if _, err := resp.Write(data); err != nil {
			return nil
		}
		if _, err := fmt.Fprintf(resp, "\r\n"); err != nil {
			return nil
		}
		resp.Flush()

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Server) handleLightStatus(c echo.Context) error {
	latest := s.monitor.Latest()
	if latest == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"signal":         "UNKNOWN",
			"room_status":    "UNKNOWN",
			"timestamp":      "",
			"detected_count": 0,
			"decision_score": 0,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"signal":         latest.Signal,
		"room_status":    latest.RoomStatus,
		"timestamp":      latest.Timestamp,
		"detected_count": len(latest.DetectedLightSources),
		"decision_score": latest.DetectionSummary.DecisionFactors.FinalScore,
	})
}

func (s *Server) handleDebugInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"camera_status":     s.cameraStatus(),
		"detection_history": s.detector.History(),
		"latest_detection":  s.monitor.Latest(),
		"system_info": echo.Map{
			"timestamp":  time.Now().Format(time.RFC3339),
			"debug_mode": s.debugMode(),
			"monitoring": s.monitor.Running(),
		},
	})
}

func (s *Server) handleDetectionDetails(c echo.Context) error {
	latest := s.monitor.Latest()
	if latest == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No detection data available"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"timestamp": latest.Timestamp,
		"final_decision": echo.Map{
			"signal":      latest.Signal,
			"room_status": latest.RoomStatus,
		},
		"frame_analysis":         latest.FrameAnalysis,
		"threshold_analysis":     latest.ThresholdAnalysis,
		"detection_summary":      latest.DetectionSummary,
		"detected_light_sources": latest.DetectedLightSources,
	})
}

func (s *Server) handleRealTimeData(c echo.Context) error {
	latest := s.monitor.Latest()
	if latest == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No data available"})
	}

	thresholds := make(echo.Map, len(latest.ThresholdAnalysis))
	for name, data := range latest.ThresholdAnalysis {
		thresholds[name] = echo.Map{
			"contours_found":     data.ValidContours,
			"total_brightness":   data.TotalBrightness,
			"average_brightness": data.AverageBrightness,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"timestamp":   latest.Timestamp,
		"signal":      latest.Signal,
		"room_status": latest.RoomStatus,
		"metrics": echo.Map{
			"average_brightness": latest.FrameAnalysis.AverageBrightness,
			"total_contours":     latest.DetectionSummary.TotalContoursFound,
			"area_coverage":      latest.DetectionSummary.AreaPercentage,
			"decision_score":     latest.DetectionSummary.DecisionFactors.FinalScore,
		},
		"threshold_results": thresholds,
	})
}

func (s *Server) handleToggleDebug(c echo.Context) error {
	s.mu.Lock()
	s.debug = !s.debug
	enabled := s.debug
	s.mu.Unlock()

	status := "Debug mode disabled"
	if enabled {
		status = "Debug mode enabled"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"debug_mode": enabled,
		"status":     status,
	})
}
