package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
)

const collectionCarousel = "carousel"

type CarouselRepository struct {
	coll *mongo.Collection
}

func NewCarouselRepository(db *mongo.Database) *CarouselRepository {
	return &CarouselRepository{coll: db.Collection(collectionCarousel)}
}

type mongoCarouselImage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ImageURL    string             `bson:"image_url"`
	Title       string             `bson:"title,omitempty"`
	Description string             `bson:"description,omitempty"`
	Order       int                `bson:"order"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *CarouselRepository) Create(ctx context.Context, img *domain.CarouselImage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, mongoCarouselImage{
		ImageURL:    img.ImageURL,
		Title:       img.Title,
		Description: img.Description,
		Order:       img.Order,
		CreatedAt:   img.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert carousel image: %w", err)
	}
	img.ID = insertedHex(res)
	return nil
}

func (r *CarouselRepository) List(ctx context.Context) ([]*domain.CarouselImage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sort := bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list carousel: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCarouselImage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode carousel: %w", err)
	}

	imgs := make([]*domain.CarouselImage, 0, len(docs))
	for _, d := range docs {
		imgs = append(imgs, &domain.CarouselImage{
			ID:          d.ID.Hex(),
			ImageURL:    d.ImageURL,
			Title:       d.Title,
			Description: d.Description,
			Order:       d.Order,
			CreatedAt:   d.CreatedAt,
		})
	}
	return imgs, nil
}

func (r *CarouselRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrNotFound)
}
