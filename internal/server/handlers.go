package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/algo-rhythm/portfolio-deck/internal/driveapi"
	"github.com/algo-rhythm/portfolio-deck/internal/pipeline"
	"github.com/algo-rhythm/portfolio-deck/internal/progress"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// GenerateRequest is the request body for /generate.
type GenerateRequest struct {
	Title         string                   `json:"title"`
	Template      string                   `json:"template" validate:"required,oneof=basic timeline photo"`
	Theme         string                   `json:"theme,omitempty"`
	BackgroundHex string                   `json:"background_hex,omitempty" validate:"omitempty,hexadecimal,len=6"`
	TextHex       string                   `json:"text_hex,omitempty" validate:"omitempty,hexadecimal,len=6"`
	Experiences   []types.ExperienceRecord `json:"experiences" validate:"required,min=1"`
}

// GenerateResponse is the response for a completed run.
type GenerateResponse struct {
	PresentationID string `json:"presentation_id"`
	FileName       string `json:"file_name"`
	SlideCount     int    `json:"slide_count"`
}

func (s *Server) decodeGenerateRequest(r *http.Request) (*GenerateRequest, error) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := s.validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, &ErrValidation{Field: fieldErrs[0].Field(), Message: fieldErrs[0].Tag()}
		}
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return &req, nil
}

func (req *GenerateRequest) pipelineOptions(databaseURL string) pipeline.Options {
	return pipeline.Options{
		Template: types.TemplateKind(req.Template),
		Theme: types.ThemeSelector{
			Name:          req.Theme,
			BackgroundHex: req.BackgroundHex,
			TextHex:       req.TextHex,
		},
		Title:       req.Title,
		Experiences: req.Experiences,
		DatabaseURL: databaseURL,
	}
}

// handleGenerate runs a generation synchronously and returns the
// finished deck's identifiers.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGenerateRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.runner.Generate(r.Context(), req.pipelineOptions(s.databaseURL))
	if err != nil {
		log.Printf("Generation failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		PresentationID: result.PresentationID,
		FileName:       result.FileName,
		SlideCount:     len(result.Slides),
	})
}

// handleGenerateStream runs a generation and streams progress via SSE.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGenerateRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var mu sync.Mutex
	opts := req.pipelineOptions(s.databaseURL)
	opts.OnProgress = progress.SinkFunc(func(e progress.Event) {
		mu.Lock()
		defer mu.Unlock()
		sse.WriteProgress(e)
	})

	result, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(result.PresentationID, result.FileName, len(result.Slides))
}

// handleListDecks returns the generated decks, newest first.
func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	portfolio, err := s.decks.EnsurePortfolioFolder(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Drive error: "+err.Error())
		return
	}

	pptFolder, err := s.decks.FindFolder(r.Context(), driveapi.PPTFolderName, portfolio.ID)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Drive error: "+err.Error())
		return
	}
	if pptFolder == nil {
		s.jsonResponse(w, http.StatusOK, []driveapi.FileInfo{})
		return
	}

	decks, err := s.decks.ListPresentations(r.Context(), pptFolder.ID)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Drive error: "+err.Error())
		return
	}
	if decks == nil {
		decks = []driveapi.FileInfo{}
	}
	s.jsonResponse(w, http.StatusOK, decks)
}

// handleListRuns returns recent generation runs from the database.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history requires a database")
		return
	}
	runs, err := s.database.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleGetRun returns one run by id.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history requires a database")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	run, err := s.database.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}
