package db

import (
	"context"
	"fmt"

	"show-notes/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollection holds one document per episode, keyed by blog URL
const DefaultCollection = "episode_notes"

// Client wraps the MongoDB client and database connection
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	collection  *mongo.Collection
}

// NewClient creates a new database client
func NewClient(connectionString, databaseName, collectionName string) *Client {
	if collectionName == "" {
		collectionName = DefaultCollection
	}

	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	database := mongoClient.Database(databaseName)
	collection := database.Collection(collectionName)

	return &Client{
		mongoClient: mongoClient,
		database:    database,
		collection:  collection,
	}
}

// Connect verifies the connection to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// SaveEpisodeNotes upserts an episode, replacing any earlier scrape of the same page
func (c *Client) SaveEpisodeNotes(ctx context.Context, episode *domain.EpisodeNotes) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}
	if episode == nil || episode.BlogURL == "" {
		return fmt.Errorf("episode has no blog URL")
	}

	filter := bson.M{"url": episode.BlogURL}
	update := bson.M{"$set": episode}
	opts := options.Update().SetUpsert(true)

	_, err := c.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetAllEpisodeNotes returns every archived episode ordered by blog URL
func (c *Client) GetAllEpisodeNotes(ctx context.Context) ([]domain.EpisodeNotes, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	cursor, err := c.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "url", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer cursor.Close(ctx)

	var episodes []domain.EpisodeNotes
	for cursor.Next(ctx) {
		var episode domain.EpisodeNotes
		if err := cursor.Decode(&episode); err != nil {
			continue // Skip invalid documents
		}
		if episode.BlogURL != "" {
			episodes = append(episodes, episode)
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return episodes, nil
}
