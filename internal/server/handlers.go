package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/classifier"
	"github.com/abhisek/prahar/internal/prahar"
	"github.com/abhisek/prahar/internal/quiz"
	"github.com/abhisek/prahar/internal/store"
)

const (
	submissionHeader = "X-Submission-ID"

	msgInvalidInput = "Invalid input. Please provide answers to all 10 questions."
	msgNotFound     = "404 - Page Not Found"
)

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"Questions": prahar.Questions(),
		"Prahars":   prahar.All(),
		"Version":   s.version,
	})
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) quizData(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": prahar.Questions()})
}

type predictRequest struct {
	Answers []int `json:"answers"`
}

func (s *Server) predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidInput})
		return
	}

	out, err := s.classifier.Classify(req.Answers)
	if err != nil {
		if errors.Is(err, classifier.ErrInvalidAnswers) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidInput})
			return
		}
		s.log.Error("classify", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction error: " + err.Error()})
		return
	}

	info, _ := prahar.ByIndex(out.Prahar)
	res := quiz.Result{
		Prahar:      out.Prahar,
		Name:        info.Name,
		Description: info.Description,
		Confidence:  out.Confidence,
		Counts:      out.NamedCounts(),
		Color:       info.Color,
		TimeOfDay:   info.TimeOfDay,
	}
	if s.narrator != nil {
		res.Reading = s.narrator.Narrate(c.Request.Context(), prahar.Questions(), req.Answers, info)
	}

	id := uuid.NewString()
	s.record(c, id, req.Answers, &res)
	s.metrics.predictions.WithLabelValues(info.TimeOfDay).Inc()

	c.Header(submissionHeader, id)
	c.JSON(http.StatusOK, res)
}

// record appends to the ledger. Failures are logged only.
func (s *Server) record(c *gin.Context, id string, answers []int, res *quiz.Result) {
	if s.ledger == nil {
		return
	}
	err := s.ledger.Append(c.Request.Context(), &store.Result{
		SubmissionID: id,
		Prahar:       res.Prahar,
		Confidence:   res.Confidence,
		Answers:      answers,
	})
	if err != nil {
		s.log.Warn("record prediction", zap.String("submission_id", id), zap.Error(err))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
}
