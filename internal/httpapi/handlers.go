package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"neuronet/internal/construct"
	"neuronet/internal/learning"
	"neuronet/internal/model"
	"neuronet/internal/nn"
	"neuronet/pkg/neuronet"
)

type buildRequest struct {
	Constructor  string             `json:"constructor"`
	Profile      string             `json:"profile"`
	Architecture model.Architecture `json:"architecture"`
	Signal       []float64          `json:"signal"`
	RandomSignal bool               `json:"random_signal"`
	Activation   string             `json:"activation"`
	InitWeights  bool               `json:"init_weights"`
	Algorithm    string             `json:"algorithm"`
	Seed         int64              `json:"seed"`
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) buildHandler(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	summary, err := s.client.Build(c.Request.Context(), neuronet.BuildRequest{
		Constructor:  req.Constructor,
		Profile:      req.Profile,
		Architecture: req.Architecture,
		Signal:       req.Signal,
		RandomSignal: req.RandomSignal,
		Activation:   req.Activation,
		InitWeights:  req.InitWeights,
		Algorithm:    req.Algorithm,
		Seed:         req.Seed,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

func (s *Server) listBuildsHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	builds, err := s.client.Builds(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if builds == nil {
		builds = []neuronet.BuildSummary{}
	}
	c.JSON(http.StatusOK, builds)
}

func (s *Server) getBuildHandler(c *gin.Context) {
	record, err := s.client.BuildRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) saveProfileHandler(c *gin.Context) {
	var arch model.Architecture
	if err := c.ShouldBindJSON(&arch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := s.client.SaveProfile(c.Request.Context(), c.Param("name"), arch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) listProfilesHandler(c *gin.Context) {
	profiles, err := s.client.Profiles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	c.JSON(http.StatusOK, profiles)
}

func (s *Server) getProfileHandler(c *gin.Context) {
	profile, err := s.client.Profile(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) listActivationsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"activations":  s.client.Activations(),
		"constructors": s.client.Constructors(),
	})
}

func writeError(c *gin.Context, err error) {
	if cfgErr, ok := construct.AsConfigError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"kind":  string(cfgErr.Kind),
			"field": cfgErr.Field,
		})
		return
	}
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, neuronet.ErrProfileNotFound),
		errors.Is(err, neuronet.ErrBuildNotFound):
		return http.StatusNotFound
	case errors.Is(err, construct.ErrUnknownConstructor),
		errors.Is(err, learning.ErrUnknownAlgorithm),
		errors.Is(err, nn.ErrActivationNotFound),
		errors.Is(err, nn.ErrInvalidLayerSize),
		errors.Is(err, nn.ErrSignalWidth),
		errors.Is(err, nn.ErrNoSignal):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
