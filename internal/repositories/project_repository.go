package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/medetk/volunteerhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, id string, project *models.Project) error
	DeleteProject(ctx context.Context, id string) error
}

// MongoProjectRepository implements ProjectRepository for MongoDB
type MongoProjectRepository struct {
	collection *mongo.Collection
}

// NewMongoProjectRepository creates a new MongoProjectRepository
func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{collection: db.Collection("projects")}
}

// CreateProject creates a new project in MongoDB
func (r *MongoProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	project.ID = primitive.NewObjectID()
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, project)
	return err
}

// GetProjectByID retrieves a project by ID from MongoDB
func (r *MongoProjectRepository) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID format: %w", err)
	}

	var project models.Project
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// GetAllProjects retrieves all projects from MongoDB, newest first
func (r *MongoProjectRepository) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject updates an existing project in MongoDB
func (r *MongoProjectRepository) UpdateProject(ctx context.Context, id string, project *models.Project) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid project ID format: %w", err)
	}

	project.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":       project.Title,
			"description": project.Description,
			"location":    project.Location,
			"start_date":  project.StartDate,
			"end_date":    project.EndDate,
			"keys":        project.Keys,
			"image":       project.Image,
			"updated_at":  project.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("project not found")
	}
	return nil
}

// DeleteProject deletes a project by ID from MongoDB
func (r *MongoProjectRepository) DeleteProject(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid project ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("project not found")
	}
	return nil
}
