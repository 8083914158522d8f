package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

const collectionActivities = "activities"

// ActivityRepository persists audit activities.
type ActivityRepository struct {
	db *mongo.Database
}

func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{db: db}
}

// Insert appends one activity to the audit collection. The project_id is
// stored as-is: activities outlive their project and may reference a
// deleted one.
func (r *ActivityRepository) Insert(ctx context.Context, activity *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"_id":         primitive.NewObjectID(),
		"project_id":  activity.ProjectID,
		"kind":        activity.Kind,
		"actor_email": activity.ActorEmail,
		"occurred_at": activity.OccurredAt,
	}
	if activity.Detail != "" {
		doc["detail"] = activity.Detail
	}

	_, err := r.db.Collection(collectionActivities).InsertOne(ctx, doc)
	return err
}
