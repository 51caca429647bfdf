package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shubh-37/social-content-engine/internal/agents"
	"github.com/shubh-37/social-content-engine/internal/database"
	"github.com/shubh-37/social-content-engine/internal/models"
)

type generateRequest struct {
	Platforms []string `json:"platforms" validate:"required,min=1,dive,required"`
	Tone      string   `json:"tone" validate:"required"`
	Keywords  []string `json:"keywords"`
}

type suggestHashtagsRequest struct {
	Content  string `json:"content"`
	Platform string `json:"platform"`
	Count    *int   `json:"count" validate:"omitempty,min=1,max=30"`
}

type postRequest struct {
	Platform string `json:"platform" validate:"required,platform"`
	Content  string `json:"content" validate:"required"`
	Status   string `json:"status" validate:"omitempty,oneof=draft approved scheduled published rejected"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time     string `json:"time" validate:"omitempty,datetime=15:04"`
}

type engagementRequest struct {
	Engagement *int `json:"engagement" validate:"required,min=0"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}

	if s.deps.DB != nil {
		if err := s.deps.DB.Health(r.Context()); err != nil {
			checks["database"] = "error"
			s.respondJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unhealthy", "checks": checks})
			return
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "checks": checks})
}

// handleGenerateContent handles POST /api/generate-content and returns the first platform's post
func (s *Server) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	posts, ok := s.generate(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"content": posts[0].Content})
}

// handleGenerate handles POST /api/generate and returns every platform's post
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	posts, ok := s.generate(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string][]agents.GeneratedPost{"posts": posts})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) ([]agents.GeneratedPost, bool) {
	var req generateRequest
	if !s.decode(w, r, &req) {
		return nil, false
	}

	posts, err := s.deps.Generator.Generate(req.Platforms, req.Tone, strings.Join(req.Keywords, " "))
	if err != nil {
		s.respondError(w, r, err, "Failed to generate content")
		return nil, false
	}

	if s.deps.Metrics != nil {
		tone := req.Tone
		if parsed, err := agents.ParseTone(req.Tone); err == nil {
			tone = string(parsed)
		}
		for _, post := range posts {
			s.deps.Metrics.PostGenerated(post.Platform, tone)
		}
	}
	return posts, true
}

// handleSuggestHashtags handles POST /api/suggest-hashtags
func (s *Server) handleSuggestHashtags(w http.ResponseWriter, r *http.Request) {
	var req suggestHashtagsRequest
	if !s.decode(w, r, &req) {
		return
	}

	count := agents.DefaultHashtagCount
	if req.Count != nil {
		count = *req.Count
	}

	hashtags := s.deps.Hashtags.ExtractHashtags(req.Content, req.Platform, count)
	s.respondJSON(w, http.StatusOK, map[string][]string{"hashtags": hashtags})
}

// handleBestPostingTime handles GET /api/best-posting-time
// An empty engagement history yields an empty list rather than an error.
func (s *Server) handleBestPostingTime(w http.ResponseWriter, r *http.Request) {
	topN := agents.DefaultTopN
	if raw := r.URL.Query().Get("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "top must be a positive integer"})
			return
		}
		topN = parsed
	}

	posts, err := s.deps.Posts.GetEngaged(r.Context())
	if err != nil {
		s.respondError(w, r, err, "Failed to calculate best posting time")
		return
	}

	times, err := s.deps.Timing.BestPostingTimes(agents.SamplesFromPosts(posts), topN)
	if errors.Is(err, agents.ErrNoData) {
		s.respondJSON(w, http.StatusOK, []agents.PostingTime{})
		return
	}
	if err != nil {
		// Stored timestamps are server data, so a bad one is not the caller's fault
		s.log.WithError(err).Error("❌ Error calculating best posting time")
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to calculate best posting time"})
		return
	}

	s.respondJSON(w, http.StatusOK, times)
}

// handleAnalytics handles GET /api/analytics
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.deps.Analytics.PlatformSummary(r.Context())
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch analytics")
		return
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

// handleListPosts handles GET /api/posts, optionally filtered by ?status=
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	var (
		posts []*models.Post
		err   error
	)

	if status := strings.ToLower(r.URL.Query().Get("status")); status != "" {
		posts, err = s.deps.Posts.GetByStatus(r.Context(), status)
	} else {
		posts, err = s.deps.Posts.GetAll(r.Context())
	}
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch posts")
		return
	}

	s.respondJSON(w, http.StatusOK, posts)
}

// handleCreatePost handles POST /api/posts
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !s.decodePost(w, r, &req) {
		return
	}

	post := models.NewPost(req.Platform, req.Content)
	applyPostRequest(post, req)

	if err := s.deps.Posts.Create(r.Context(), post); err != nil {
		s.respondError(w, r, err, "Failed to create post")
		return
	}

	s.respondJSON(w, http.StatusCreated, post)
}

// handleGetPost handles GET /api/posts/{id}
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.deps.Posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch post")
		return
	}
	s.respondJSON(w, http.StatusOK, post)
}

// handleUpdatePost handles PUT /api/posts/{id}
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !s.decodePost(w, r, &req) {
		return
	}

	post, err := s.deps.Posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, "Failed to update post")
		return
	}

	post.Platform = req.Platform
	post.Content = req.Content
	applyPostRequest(post, req)

	if err := s.deps.Posts.Update(r.Context(), post); err != nil {
		s.respondError(w, r, err, "Failed to update post")
		return
	}

	s.respondJSON(w, http.StatusOK, post)
}

// handleDeletePost handles DELETE /api/posts/{id}
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Posts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err, "Failed to delete post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRecordEngagement handles POST /api/posts/{id}/engagement
// It stores the post's latest count and appends an analytics observation.
func (s *Server) handleRecordEngagement(w http.ResponseWriter, r *http.Request) {
	var req engagementRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	post, err := s.deps.Posts.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, "Failed to record engagement")
		return
	}

	if err := s.deps.Posts.UpdateEngagement(ctx, post.ID, *req.Engagement); err != nil {
		s.respondError(w, r, err, "Failed to record engagement")
		return
	}
	post.Engagement = *req.Engagement

	entry := &models.AnalyticsEntry{
		Platform:   post.Platform,
		Date:       time.Now().Format(models.DateLayout),
		Engagement: *req.Engagement,
	}
	if err := s.deps.Analytics.Record(ctx, entry); err != nil {
		s.respondError(w, r, err, "Failed to record engagement")
		return
	}

	s.respondJSON(w, http.StatusOK, post)
}

func applyPostRequest(post *models.Post, req postRequest) {
	if req.Status != "" {
		post.Status = req.Status
	}
	if req.Date != "" {
		post.Date = req.Date
	}
	post.Time = req.Time
}

// decodePost normalizes the status before validating, so "Draft" and "draft" both work
func (s *Server) decodePost(w http.ResponseWriter, r *http.Request, req *postRequest) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	return s.check(w, req)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return s.check(w, req)
}

func (s *Server) check(w http.ResponseWriter, req any) bool {
	err := s.validator.Validate(req)
	if err == nil {
		return true
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: reqErr.Error(), Fields: reqErr.Fields})
		return false
	}
	s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	return false
}

// respondError maps engine validation errors to 400, missing posts to 404 and the rest to 500
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case agents.IsValidationError(err):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, database.ErrPostNotFound):
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: "Post not found"})
	default:
		s.log.WithError(err).
			WithField("request_id", middleware.GetReqID(r.Context())).
			Error("❌ " + message)
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: message})
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Warn("Failed to encode response")
	}
}
