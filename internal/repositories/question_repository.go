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

// QuestionRepository defines the interface for question data operations.
// Every read path normalizes legacy single-answer documents into the
// answer-thread shape before returning them.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question *models.Question) error
	GetQuestionByID(ctx context.Context, id string) (*models.Question, error)
	GetQuestionsByProjectID(ctx context.Context, projectID string) ([]models.Question, error)
	GetAllQuestions(ctx context.Context) ([]models.Question, error)
	// AppendAnswer pushes one answer onto the question's thread. Prior
	// answers are never overwritten.
	AppendAnswer(ctx context.Context, id string, answer models.Answer) error
	DeleteQuestion(ctx context.Context, id string) error
	DeleteQuestionsByProjectID(ctx context.Context, projectID string) error
}

// MongoQuestionRepository implements QuestionRepository for MongoDB
type MongoQuestionRepository struct {
	collection *mongo.Collection
}

// NewMongoQuestionRepository creates a new MongoQuestionRepository
func NewMongoQuestionRepository(db *mongo.Database) *MongoQuestionRepository {
	return &MongoQuestionRepository{collection: db.Collection("questions")}
}

// CreateQuestion creates a new question in MongoDB
func (r *MongoQuestionRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	question.ID = primitive.NewObjectID()
	question.CreatedAt = time.Now()
	if question.Answers == nil {
		question.Answers = []models.Answer{}
	}
	_, err := r.collection.InsertOne(ctx, question)
	return err
}

// GetQuestionByID retrieves a question by ID from MongoDB
func (r *MongoQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*models.Question, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid question ID format: %w", err)
	}

	var question models.Question
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("question not found")
		}
		return nil, err
	}
	question.Normalize()
	return &question, nil
}

// GetQuestionsByProjectID retrieves all questions for a project, newest first
func (r *MongoQuestionRepository) GetQuestionsByProjectID(ctx context.Context, projectID string) ([]models.Question, error) {
	return r.find(ctx, bson.M{"project_id": projectID})
}

// GetAllQuestions retrieves every question (admin moderation view)
func (r *MongoQuestionRepository) GetAllQuestions(ctx context.Context) ([]models.Question, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoQuestionRepository) find(ctx context.Context, filter bson.M) ([]models.Question, error) {
	var questions []models.Question
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].Normalize()
	}
	return questions, nil
}

// AppendAnswer appends one answer to the question's thread in MongoDB
func (r *MongoQuestionRepository) AppendAnswer(ctx context.Context, id string, answer models.Answer) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid question ID format: %w", err)
	}

	// Migrate a legacy single-answer document to the thread shape first,
	// so the old answer survives the append. Conditional on the array
	// being absent; a no-op for documents already carrying a thread.
	question, err := r.GetQuestionByID(ctx, id)
	if err != nil {
		return err
	}
	if len(question.Answers) > 0 {
		_, err = r.collection.UpdateOne(ctx,
			bson.M{"_id": objID, "answers": bson.M{"$exists": false}},
			bson.M{
				"$set":   bson.M{"answers": question.Answers},
				"$unset": bson.M{"answer": "", "answerer": "", "answered_at": ""},
			})
		if err != nil {
			return err
		}
	}

	update := bson.M{"$push": bson.M{"answers": answer}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("question not found")
	}
	return nil
}

// DeleteQuestion deletes a question by ID from MongoDB
func (r *MongoQuestionRepository) DeleteQuestion(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid question ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("question not found")
	}
	return nil
}

// DeleteQuestionsByProjectID removes all questions of a deleted project
func (r *MongoQuestionRepository) DeleteQuestionsByProjectID(ctx context.Context, projectID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"project_id": projectID})
	return err
}
