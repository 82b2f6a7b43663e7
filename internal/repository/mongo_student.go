package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

// MongoStudentRepository stores applications in the students collection.
type MongoStudentRepository struct {
	collection *mongo.Collection
}

func NewMongoStudentRepository(db *mongo.Database) *MongoStudentRepository {
	return &MongoStudentRepository{collection: db.Collection("students")}
}

func (r *MongoStudentRepository) Insert(ctx context.Context, student *models.Student) (string, error) {
	// Friendly pre-check; the unique index on email is the actual guarantee.
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(student.Email), "isActive": true}).Err()
	if err == nil {
		return "", apperrors.Conflict("A student with this email already exists")
	}
	if err != mongo.ErrNoDocuments {
		return "", apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}

	if student.ID.IsZero() {
		student.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, student); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("A student with this email already exists")
		}
		return "", apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}
	return student.ID.Hex(), nil
}

func (r *MongoStudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Application not found")
	}
	var student models.Student
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("Application not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}
	return &student, nil
}

func (r *MongoStudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("Application not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}
	return &student, nil
}

// Sort keys accepted by the admin listing, mapped to stored fields.
var studentSortFields = map[string]string{
	"createdAt": "createdAt",
	"name":      "firstName",
	"status":    "applicationStatus",
}

func (r *MongoStudentRepository) List(ctx context.Context, q StudentListQuery) (*StudentPage, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["applicationStatus"] = q.Status
	}
	if q.Program != "" {
		filter["program"] = q.Program
	}
	if q.Search != "" {
		regex := bson.M{"$regex": q.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"firstName": regex},
			{"lastName": regex},
			{"email": regex},
			{"phone": regex},
			{"studentId": regex},
		}
	}

	sortField, ok := studentSortFields[q.SortBy]
	if !ok {
		sortField = "createdAt"
	}
	direction := -1
	if q.Order == "asc" {
		direction = 1
	}

	skip := int64((q.Page - 1) * q.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: direction}}).
		SetSkip(skip).
		SetLimit(int64(q.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}
	defer cursor.Close(ctx)

	students := []*models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}

	return &StudentPage{Students: students, Pagination: NewPagination(q.Page, q.Limit, total)}, nil
}

func (r *MongoStudentRepository) Save(ctx context.Context, student *models.Student) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": student.ID}, student)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("Application not found")
	}
	return nil
}

func (r *MongoStudentRepository) LastStudentID(ctx context.Context, prefix string) (string, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "studentId", Value: -1}})
	var student models.Student
	err := r.collection.FindOne(ctx, bson.M{"studentId": bson.M{"$regex": "^" + prefix}}, opts).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}
	return student.StudentID, nil
}

func (r *MongoStudentRepository) Statistics(ctx context.Context) (*StudentStats, error) {
	overviewPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalApplications", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "approvedStudents", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$eq", Value: bson.A{"$applicationStatus", "Approved"}}}, 1, 0}},
			}}}},
			{Key: "pendingApplications", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$eq", Value: bson.A{"$applicationStatus", "Pending"}}}, 1, 0}},
			}}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, overviewPipeline)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}
	defer cursor.Close(ctx)

	var overviews []StudentOverview
	if err := cursor.All(ctx, &overviews); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}

	stats := &StudentStats{ProgramDistribution: []GroupCount{}}
	if len(overviews) > 0 {
		stats.Overview = overviews[0]
	}

	programPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$program"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	programCursor, err := r.collection.Aggregate(ctx, programPipeline)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}
	defer programCursor.Close(ctx)

	if err := programCursor.All(ctx, &stats.ProgramDistribution); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "students store unavailable", err)
	}

	return stats, nil
}
