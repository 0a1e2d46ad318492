package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

const appointmentsCollection = "appointments"

// AppointmentRepository implements ports.AppointmentRepository using MongoDB.
type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

type appointmentDoc struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty"`
	PatientID          primitive.ObjectID  `bson:"patient_id"`
	DoctorID           primitive.ObjectID  `bson:"doctor_id"`
	Date               time.Time           `bson:"appointment_date"`
	Time               string              `bson:"time"`
	Status             string              `bson:"status"`
	Reason             string              `bson:"reason"`
	Notes              string              `bson:"notes,omitempty"`
	Type               string              `bson:"appointment_type"`
	Duration           int                 `bson:"duration"`
	BookedBy           *primitive.ObjectID `bson:"booked_by,omitempty"`
	CancelledAt        *time.Time          `bson:"cancelled_at,omitempty"`
	CancelledBy        *primitive.ObjectID `bson:"cancelled_by,omitempty"`
	CancellationReason string              `bson:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time          `bson:"completed_at,omitempty"`
	CreatedAt          time.Time           `bson:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at"`
}

func toAppointmentDoc(a *domain.Appointment) (*appointmentDoc, error) {
	patientOID, err := primitive.ObjectIDFromHex(a.PatientID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	doctorOID, err := primitive.ObjectIDFromHex(a.DoctorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := &appointmentDoc{
		PatientID:          patientOID,
		DoctorID:           doctorOID,
		Date:               a.Date,
		Time:               a.Time,
		Status:             string(a.Status),
		Reason:             a.Reason,
		Notes:              a.Notes,
		Type:               string(a.Type),
		Duration:           a.Duration,
		CancelledAt:        a.CancelledAt,
		CancellationReason: a.CancellationReason,
		CompletedAt:        a.CompletedAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.BookedBy != "" {
		if oid, err := primitive.ObjectIDFromHex(a.BookedBy); err == nil {
			doc.BookedBy = &oid
		}
	}
	if a.CancelledBy != "" {
		if oid, err := primitive.ObjectIDFromHex(a.CancelledBy); err == nil {
			doc.CancelledBy = &oid
		}
	}
	return doc, nil
}

func (d *appointmentDoc) toDomain() *domain.Appointment {
	a := &domain.Appointment{
		ID:                 d.ID.Hex(),
		PatientID:          d.PatientID.Hex(),
		DoctorID:           d.DoctorID.Hex(),
		Date:               d.Date.UTC(),
		Time:               d.Time,
		Status:             domain.AppointmentStatus(d.Status),
		Reason:             d.Reason,
		Notes:              d.Notes,
		Type:               domain.AppointmentType(d.Type),
		Duration:           d.Duration,
		CancelledAt:        d.CancelledAt,
		CancellationReason: d.CancellationReason,
		CompletedAt:        d.CompletedAt,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
	if d.BookedBy != nil {
		a.BookedBy = d.BookedBy.Hex()
	}
	if d.CancelledBy != nil {
		a.CancelledBy = d.CancelledBy.Hex()
	}
	return a
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc, err := toAppointmentDoc(a)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAppointmentConflict
		}
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc appointmentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}
	doc, err := toAppointmentDoc(a)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) FindActiveSlot(ctx context.Context, doctorID string, date time.Time, slot string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	from, to := domain.DayBucket(date)
	filter := bson.M{
		"doctor_id":        oid,
		"appointment_date": bson.M{"$gte": from, "$lt": to},
		"time":             slot,
		"status":           bson.M{"$in": activeStatusStrings()},
	}

	var doc appointmentDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find active slot: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter ports.ListAppointmentsFilter) ([]*domain.Appointment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.DoctorID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.DoctorID)
		if err != nil {
			return nil, 0, domain.ErrUserNotFound
		}
		query["doctor_id"] = oid
	}
	if filter.PatientID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.PatientID)
		if err != nil {
			return nil, 0, domain.ErrUserNotFound
		}
		query["patient_id"] = oid
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Date != nil {
		from, to := domain.DayBucket(*filter.Date)
		query["appointment_date"] = bson.M{"$gte": from, "$lt": to}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	order := 1
	if filter.NewestFirst {
		order = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "appointment_date", Value: order}, {Key: "time", Value: order}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	defer cur.Close(ctx)

	var appts []*domain.Appointment
	for cur.Next(ctx) {
		var doc appointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode appointment: %w", err)
		}
		appts = append(appts, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate appointments: %w", err)
	}
	return appts, total, nil
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count appointments by status: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[domain.AppointmentStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		counts[domain.AppointmentStatus(row.Status)] = row.Count
	}
	return counts, cur.Err()
}

func (r *AppointmentRepository) CountInWindow(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{
		"appointment_date": bson.M{"$gte": from, "$lt": to},
	})
}

func (r *AppointmentRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find recent appointments: %w", err)
	}
	defer cur.Close(ctx)

	var appts []*domain.Appointment
	for cur.Next(ctx) {
		var doc appointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		appts = append(appts, doc.toDomain())
	}
	return appts, cur.Err()
}

// EnsureIndexes creates the appointment indexes. The partial unique index on
// (doctor, date, time) over non-terminal statuses serializes the booking
// conflict check at the store, so two racing bookings for the same slot
// cannot both succeed. Requires MongoDB 6.0+ for $in in the partial filter.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "doctor_id", Value: 1},
				{Key: "appointment_date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": activeStatusStrings()},
				}),
		},
		{
			Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "appointment_date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "appointment_date", Value: 1}},
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func activeStatusStrings() []string {
	out := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
