// Manual batch grading trigger.
//
// Grading normally happens per assessment through the API. This script walks
// every assessment and grades whatever completed, ungraded takers it finds,
// for example after an import or a missed grading run.
//
// Usage: go run scripts/grade_all.go

package main

import (
	"errors"
	"log"

	"schoolhub_backend/internal/config"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"
	"schoolhub_backend/pkg/database"
	"schoolhub_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	assessments := repository.NewAssessmentRepository(db)
	takers := repository.NewAssessmentTakerRepository(db)
	grading := service.NewGradingService(assessments, takers)

	page := 1
	gradedTotal := 0
	for {
		batch, _, err := assessments.List(repository.AssessmentFilter{Page: page, Size: 100})
		if err != nil {
			log.Fatalf("Failed to list assessments: %v", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, a := range batch {
			summary, err := grading.GradeAssessment(a.ID)
			if err != nil {
				if errors.Is(err, util.ErrNotGradable) || errors.Is(err, util.ErrNoQuestions) {
					continue
				}
				log.Printf("Failed to grade assessment %s: %v", a.ID, err)
				continue
			}
			if summary.GradedCount > 0 {
				log.Printf("Assessment %s: graded %d of %d takers", a.ID, summary.GradedCount, summary.TotalCount)
				gradedTotal += summary.GradedCount
			}
		}
		page++
	}

	log.Printf("Done, graded %d taker records", gradedTotal)
}
