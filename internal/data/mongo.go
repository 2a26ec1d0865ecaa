package data

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPropertyModel stores listings as documents in a MongoDB collection.
type MongoPropertyModel struct {
	Collection *mongo.Collection
}

// mongoSortFields maps the safelisted sort columns to document field names.
var mongoSortFields = map[string]string{
	"created_at": "createdAt",
	"price":      "price",
}

// EnsureIndexes creates the indexes used by the listing queries.
func (m MongoPropertyModel) EnsureIndexes(ctx context.Context) error {
	_, err := m.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "bedrooms", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
		{Keys: bson.D{{Key: "availability", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

// Insert assigns a new identifier to p and stores it.
func (m MongoPropertyModel) Insert(ctx context.Context, p *Property) error {
	p.ID = uuid.NewString()
	_, err := m.Collection.InsertOne(ctx, p)
	return err
}

// Get retrieves a single listing by id.
func (m MongoPropertyModel) Get(ctx context.Context, id string) (*Property, error) {
	var p Property
	err := m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetAll returns every listing matching filters in the requested order.
func (m MongoPropertyModel) GetAll(ctx context.Context, filters Filters) ([]*Property, error) {
	query := bson.M{}
	if filters.Type != "" {
		query["type"] = filters.Type
	}
	if filters.Availability != "" {
		query["availability"] = filters.Availability
	}
	if filters.Featured != nil {
		query["featured"] = *filters.Featured
	}

	direction := 1
	if filters.sortDirection() == "DESC" {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{
		{Key: mongoSortFields[filters.sortColumn()], Value: direction},
		{Key: "_id", Value: 1},
	})

	cursor, err := m.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []*Property{}
	for cursor.Next(ctx) {
		var p Property
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		properties = append(properties, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return properties, nil
}

// Update replaces the stored document with p.
func (m MongoPropertyModel) Update(ctx context.Context, p *Property) error {
	result, err := m.Collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes the listing with the given id.
func (m MongoPropertyModel) Delete(ctx context.Context, id string) error {
	result, err := m.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// IncrementViews bumps the view counter by one without touching updatedAt.
func (m MongoPropertyModel) IncrementViews(ctx context.Context, id string) error {
	result, err := m.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// MongoReviewModel stores reviews as documents in a MongoDB collection.
type MongoReviewModel struct {
	Collection *mongo.Collection
}

// Insert assigns a new identifier to r and stores it.
func (m MongoReviewModel) Insert(ctx context.Context, r *Review) error {
	r.ID = uuid.NewString()
	_, err := m.Collection.InsertOne(ctx, r)
	return err
}

// GetForProperty returns the reviews of one listing, newest first.
func (m MongoReviewModel) GetForProperty(ctx context.Context, propertyID string) ([]*Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := m.Collection.Find(ctx, bson.M{"propertyId": propertyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []*Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
