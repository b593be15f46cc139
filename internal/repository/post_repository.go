package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blogapi/internal/model"
)

// PostRepository defines post persistence operations. Every operation is a
// single-document read or write; comment append relies on document-level
// atomicity of $push.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	List(ctx context.Context, skip, limit int64) ([]model.Post, error)
	Count(ctx context.Context) (int64, error)
	FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.Post, error)
	SearchByTitle(ctx context.Context, keyword string) ([]model.Post, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) error
}

type postRepository struct {
	col *mongo.Collection
}

// NewPostRepository builds a Mongo-backed post repository.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{col: db.Collection("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}
	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, skip, limit int64) ([]model.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []model.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *postRepository) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.Post, error) {
	cur, err := r.col.Find(ctx, bson.M{"author": authorID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []model.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchByTitle matches the keyword as a case-insensitive substring of the
// title. An empty keyword matches every post.
func (r *postRepository) SearchByTitle(ctx context.Context, keyword string) ([]model.Post, error) {
	filter := bson.M{}
	if keyword != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []model.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateFields applies a $set patch and returns the updated document.
func (r *postRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Post, error) {
	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post model.Post
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PushComment appends a comment to the post's embedded list in one atomic
// document mutation.
func (r *postRepository) PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
