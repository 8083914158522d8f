package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

const (
	collectionProjects = "projects"
	collectionMembers  = "members"
	collectionTasks    = "tasks"
)

// ProjectRepository implements ports.ProjectRepository on MongoDB. Lookups
// hydrate the members/tasks ID lists via $lookup; multi-document writes run
// inside a session transaction.
type ProjectRepository struct {
	db *mongo.Database
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type memberDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID primitive.ObjectID `bson:"project_id"`
	Email     string             `bson:"email"`
	FullName  string             `bson:"full_name"`
	Avatar    string             `bson:"avatar,omitempty"`
	Role      string             `bson:"role"`
}

type taskDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	ProjectID   primitive.ObjectID   `bson:"project_id"`
	Title       string               `bson:"title"`
	Description string               `bson:"description,omitempty"`
	Type        string               `bson:"type"`
	Status      string               `bson:"status"`
	Reporter    primitive.ObjectID   `bson:"reporter"`
	Assignees   []primitive.ObjectID `bson:"assignees"`
	CreatedAt   time.Time            `bson:"created_at"`
}

type projectDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	URL         string               `bson:"url"`
	Description string               `bson:"description,omitempty"`
	Members     []primitive.ObjectID `bson:"members"`
	Tasks       []primitive.ObjectID `bson:"tasks"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

// projectViewDoc is the aggregation output with relations hydrated in place.
type projectViewDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	URL         string             `bson:"url"`
	Description string             `bson:"description,omitempty"`
	Members     []memberDoc        `bson:"members"`
	Tasks       []taskDoc          `bson:"tasks"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func lookupStage(from string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   from, // relation list fields share the collection name
		"foreignField": "_id",
		"as":           from,
	}}}
}

// Create inserts the creator's member snapshot and the project document in
// one transaction so a partial failure cannot orphan either record.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project, creator *domain.Member) (*domain.Project, error) {
	projectID := primitive.NewObjectID()
	member := memberDoc{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Email:     creator.Email,
		FullName:  creator.FullName,
		Avatar:    creator.Avatar,
		Role:      creator.Role,
	}
	doc := projectDoc{
		ID:          projectID,
		Title:       project.Title,
		URL:         project.URL,
		Description: project.Description,
		Members:     []primitive.ObjectID{member.ID},
		Tasks:       []primitive.ObjectID{},
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.db.Collection(collectionMembers).InsertOne(sc, member); err != nil {
			return nil, err
		}
		if _, err := r.db.Collection(collectionProjects).InsertOne(sc, doc); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	stored := *project
	stored.ID = projectID.Hex()
	stored.Members = []string{member.ID.Hex()}
	stored.Tasks = []string{}
	return &stored, nil
}

// FindByID resolves a project by identifier with its members joined.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.ProjectView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": oid}}},
		lookupStage(collectionMembers),
	}
	return r.aggregateOne(ctx, pipeline)
}

// FindBySlug resolves a project by its url slug with members and tasks
// joined.
func (r *ProjectRepository) FindBySlug(ctx context.Context, slug string) (*domain.ProjectView, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"url": slug}}},
		lookupStage(collectionMembers),
		lookupStage(collectionTasks),
	}
	return r.aggregateOne(ctx, pipeline)
}

// FindByMemberEmail returns every project the email is enrolled in, with
// members and tasks joined for summary building.
func (r *ProjectRepository) FindByMemberEmail(ctx context.Context, email string) ([]*domain.ProjectView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		lookupStage(collectionMembers),
		bson.D{{Key: "$match", Value: bson.M{"members.email": email}}},
		lookupStage(collectionTasks),
	}

	cursor, err := r.db.Collection(collectionProjects).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []projectViewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	views := make([]*domain.ProjectView, 0, len(docs))
	for i := range docs {
		views = append(views, toProjectView(&docs[i]))
	}
	return views, nil
}

// Update applies a partial field merge via $set. Relation lists are never
// part of an update.
func (r *ProjectRepository) Update(ctx context.Context, id string, update ports.ProjectUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.URL != nil {
		set["url"] = *update.URL
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.Collection(collectionProjects).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete removes the project document only; member and task documents are
// intentionally not cascaded.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.Collection(collectionProjects).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// AddMember inserts the member snapshot and appends its ID to the project's
// members relation in one transaction. The unique (project_id, email) index
// turns concurrent duplicate enrollments into domain.ErrAlreadyMember.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID string, member *domain.Member) (*domain.Member, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	doc := memberDoc{
		ID:        primitive.NewObjectID(),
		ProjectID: oid,
		Email:     member.Email,
		FullName:  member.FullName,
		Avatar:    member.Avatar,
		Role:      member.Role,
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.db.Collection(collectionMembers).InsertOne(sc, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrAlreadyMember
			}
			return nil, err
		}
		res, err := r.db.Collection(collectionProjects).UpdateOne(sc,
			bson.M{"_id": oid},
			bson.M{"$push": bson.M{"members": doc.ID}},
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

	return toMember(&doc), nil
}

// EnsureIndexes creates the indexes backing slug lookups and the
// duplicate-membership constraint.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.db.Collection(collectionProjects).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "url", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	// The compound unique index is what makes the duplicate-membership
	// check enforcing rather than advisory under concurrent enrollments.
	if _, err := r.db.Collection(collectionMembers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	_, err := r.db.Collection(collectionTasks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "project_id", Value: 1}},
	})
	return err
}

func (r *ProjectRepository) aggregateOne(ctx context.Context, pipeline mongo.Pipeline) (*domain.ProjectView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.db.Collection(collectionProjects).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []projectViewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return toProjectView(&docs[0]), nil
}

func toMember(d *memberDoc) *domain.Member {
	return &domain.Member{
		ID:        d.ID.Hex(),
		ProjectID: d.ProjectID.Hex(),
		Email:     d.Email,
		FullName:  d.FullName,
		Avatar:    d.Avatar,
		Role:      d.Role,
	}
}

func toTask(d *taskDoc) domain.Task {
	assignees := make([]string, 0, len(d.Assignees))
	for _, a := range d.Assignees {
		assignees = append(assignees, a.Hex())
	}
	return domain.Task{
		ID:          d.ID.Hex(),
		ProjectID:   d.ProjectID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Type:        domain.TaskType(d.Type),
		Status:      domain.TaskStatus(d.Status),
		Reporter:    d.Reporter.Hex(),
		Assignees:   assignees,
		CreatedAt:   d.CreatedAt,
	}
}

func toProjectView(d *projectViewDoc) *domain.ProjectView {
	view := &domain.ProjectView{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		URL:         d.URL,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for i := range d.Members {
		view.Members = append(view.Members, *toMember(&d.Members[i]))
	}
	for i := range d.Tasks {
		view.Tasks = append(view.Tasks, toTask(&d.Tasks[i]))
	}
	return view
}
