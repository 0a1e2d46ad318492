package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type doctorProfileDoc struct {
	Specialization string            `bson:"specialization"`
	Qualifications string            `bson:"qualifications,omitempty"`
	Experience     int               `bson:"experience"`
	Availability   map[string]string `bson:"availability,omitempty"`
}

type patientProfileDoc struct {
	DateOfBirth      *time.Time `bson:"date_of_birth,omitempty"`
	Gender           string     `bson:"gender,omitempty"`
	Address          string     `bson:"address,omitempty"`
	EmergencyContact string     `bson:"emergency_contact,omitempty"`
	BloodGroup       string     `bson:"blood_group,omitempty"`
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Phone        string             `bson:"phone,omitempty"`
	IsActive     bool               `bson:"is_active"`
	Doctor       *doctorProfileDoc  `bson:"doctor,omitempty"`
	Patient      *patientProfileDoc `bson:"patient,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toUserDoc(u *domain.User) *userDoc {
	doc := &userDoc{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Phone:        u.Phone,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.Doctor != nil {
		doc.Doctor = &doctorProfileDoc{
			Specialization: u.Doctor.Specialization,
			Qualifications: u.Doctor.Qualifications,
			Experience:     u.Doctor.Experience,
			Availability:   u.Doctor.Availability,
		}
	}
	if u.Patient != nil {
		doc.Patient = &patientProfileDoc{
			DateOfBirth:      u.Patient.DateOfBirth,
			Gender:           u.Patient.Gender,
			Address:          u.Patient.Address,
			EmergencyContact: u.Patient.EmergencyContact,
			BloodGroup:       u.Patient.BloodGroup,
		}
	}
	return doc
}

func (d *userDoc) toDomain() *domain.User {
	u := &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		Phone:        d.Phone,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
	if d.Doctor != nil {
		u.Doctor = &domain.DoctorProfile{
			Specialization: d.Doctor.Specialization,
			Qualifications: d.Doctor.Qualifications,
			Experience:     d.Doctor.Experience,
			Availability:   d.Doctor.Availability,
		}
	}
	if d.Patient != nil {
		u.Patient = &domain.PatientProfile{
			DateOfBirth:      d.Patient.DateOfBirth,
			Gender:           d.Patient.Gender,
			Address:          d.Patient.Address,
			EmergencyContact: d.Patient.EmergencyContact,
			BloodGroup:       d.Patient.BloodGroup,
		}
	}
	return u
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDoc(user)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toUserDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Role != "" {
		query["role"] = string(filter.Role)
	}
	if filter.Search != "" {
		rx := ciRegex(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"email": rx},
			bson.M{"phone": rx},
		}
	}
	if filter.Specialization != "" {
		query["doctor.specialization"] = ciRegex(filter.Specialization)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[domain.Role]int64)
	for cur.Next(ctx) {
		var row struct {
			Role  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode role count: %w", err)
		}
		counts[domain.Role(row.Role)] = row.Count
	}
	return counts, cur.Err()
}

func (r *UserRepository) FindRefs(ctx context.Context, ids []string) (map[string]ports.UserRef, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return map[string]ports.UserRef{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{
		"name":                  1,
		"email":                 1,
		"phone":                 1,
		"doctor.specialization": 1,
	})
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find user refs: %w", err)
	}
	defer cur.Close(ctx)

	refs := make(map[string]ports.UserRef, len(oids))
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user ref: %w", err)
		}
		ref := ports.UserRef{
			ID:    doc.ID.Hex(),
			Name:  doc.Name,
			Email: doc.Email,
			Phone: doc.Phone,
		}
		if doc.Doctor != nil {
			ref.Specialization = doc.Doctor.Specialization
		}
		refs[ref.ID] = ref
	}
	return refs, cur.Err()
}

// EnsureIndexes creates the indexes the user collection relies on: unique
// email across all roles, and the role/active pair used by listings.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}, {Key: "is_active", Value: 1}},
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// ciRegex builds a case-insensitive partial-match regex with the user input
// quoted, so search terms cannot inject regex syntax.
func ciRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
