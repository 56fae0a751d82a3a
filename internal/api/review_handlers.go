package api

import (
	"net/http"

	"github.com/vytor/kanjiflash/internal/answer"
	"github.com/vytor/kanjiflash/internal/models"
)

type answerRequest struct {
	QuestionType answer.QuestionType `json:"question_type"`
	Answer       string              `json:"answer"`
}

type reviewRequest struct {
	IncorrectMeaningAnswers int `json:"incorrect_meaning_answers"`
	IncorrectReadingAnswers int `json:"incorrect_reading_answers"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	verdict, err := s.ReviewService.SubmitAnswer(r.Context(), id, req.QuestionType, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, verdict)
}

func (s *Server) handleStartLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ReviewService.StartLesson(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleCompleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ReviewService.CompleteReview(r.Context(), id, req.IncorrectMeaningAnswers, req.IncorrectReadingAnswers)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	reviews, err := s.ReviewService.ListReviews(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"reviews": reviews})
}
