package repository

import (
	"context"

	models "grade-analytics/app/models/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reportCollection = "student_reports"

type ReportRepository interface {
	InsertOne(ctx context.Context, report models.ArchivedReport) (string, error)
	FindByStudent(ctx context.Context, studentID string, limit int64) ([]models.ArchivedReport, error)
}

type reportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database) ReportRepository {
	return &reportRepository{collection: db.Collection(reportCollection)}
}

func (r *reportRepository) InsertOne(ctx context.Context, report models.ArchivedReport) (string, error) {
	res, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

// FindByStudent mengembalikan arsip terbaru lebih dulu.
func (r *reportRepository) FindByStudent(ctx context.Context, studentID string, limit int64) ([]models.ArchivedReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "archivedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"studentId": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := make([]models.ArchivedReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
