package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grade-analytics/app/models/stats"
)

// ArchivedReport adalah snapshot StudentReport yang disimpan di MongoDB.
type ArchivedReport struct {
	ID          primitive.ObjectID            `bson:"_id,omitempty" json:"id"`
	DatasetID   string                        `bson:"datasetId" json:"datasetId"`
	DatasetName string                        `bson:"-" json:"datasetName,omitempty"`
	StudentID   string                        `bson:"studentId" json:"studentId"`
	Mean        float64                       `bson:"mean" json:"mean"`
	Passed      int                           `bson:"passedGrades" json:"passedGrades"`
	Bulletin    map[string]map[string]float64 `bson:"bulletin" json:"bulletin"`
	Rankings    []RankingDoc                  `bson:"rankings" json:"rankings"`
	ArchivedAt  time.Time                     `bson:"archivedAt" json:"archivedAt"`
}

type RankingDoc struct {
	Subject string  `bson:"subject" json:"subject"`
	Grade   float64 `bson:"grade" json:"grade"`
	Rank    int     `bson:"rank" json:"rank"`
	Total   int     `bson:"total" json:"total"`
	Label   string  `bson:"label" json:"label"`
}

func NewArchivedReport(datasetID string, r stats.StudentReport, at time.Time) ArchivedReport {
	rankings := make([]RankingDoc, len(r.Rankings))
	for i, rk := range r.Rankings {
		rankings[i] = RankingDoc{Subject: rk.Subject, Grade: rk.Grade, Rank: rk.Rank, Total: rk.Total, Label: rk.Label}
	}
	return ArchivedReport{
		DatasetID:  datasetID,
		StudentID:  r.StudentID,
		Mean:       r.Mean,
		Passed:     r.PassedGrades,
		Bulletin:   r.Bulletin,
		Rankings:   rankings,
		ArchivedAt: at,
	}
}
