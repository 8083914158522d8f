package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/project-api/internal/core/domain"
)

// TaskRepository implements ports.TaskRepository on MongoDB.
type TaskRepository struct {
	db *mongo.Database
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task document and appends its ID to the owning
// project's tasks relation in one transaction.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	projectID, err := primitive.ObjectIDFromHex(task.ProjectID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	reporter, err := primitive.ObjectIDFromHex(task.Reporter)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	assignees := make([]primitive.ObjectID, 0, len(task.Assignees))
	for _, a := range task.Assignees {
		oid, err := primitive.ObjectIDFromHex(a)
		if err != nil {
			return nil, domain.ErrUserNotFound
		}
		assignees = append(assignees, oid)
	}

	doc := taskDoc{
		ID:          primitive.NewObjectID(),
		ProjectID:   projectID,
		Title:       task.Title,
		Description: task.Description,
		Type:        string(task.Type),
		Status:      string(task.Status),
		Reporter:    reporter,
		Assignees:   assignees,
		CreatedAt:   task.CreatedAt,
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.db.Collection(collectionTasks).InsertOne(sc, doc); err != nil {
			return nil, err
		}
		res, err := r.db.Collection(collectionProjects).UpdateOne(sc,
			bson.M{"_id": projectID},
			bson.M{"$push": bson.M{"tasks": doc.ID}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrProjectNotFound
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	created := toTask(&doc)
	return &created, nil
}
