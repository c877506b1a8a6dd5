// Package repository provides data access for compositions and their items.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/construsol/proposal-service/internal/domain/model"
)

// ErrCompositionNotFound is returned when a composition or line item does
// not exist.
var ErrCompositionNotFound = errors.New("composition not found")

// compositionDocument maps a composition to MongoDB. The total is stored
// as a string so no precision is lost on the round trip.
type compositionDocument struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	Name                  string             `bson:"name"`
	TotalValuePerUnitArea string             `bson:"total_value_per_unit_area"`
	CreatedAt             time.Time          `bson:"created_at"`
	UpdatedAt             time.Time          `bson:"updated_at"`
}

func (d compositionDocument) toModel() (model.Composition, error) {
	total, err := decimal.NewFromString(d.TotalValuePerUnitArea)
	if err != nil {
		return model.Composition{}, err
	}
	return model.Composition{
		ID:                    d.ID,
		Name:                  d.Name,
		TotalValuePerUnitArea: total,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}, nil
}

// itemDocument maps a composition line item to MongoDB.
type itemDocument struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	CompositionID          primitive.ObjectID `bson:"composition_id"`
	ProductCode            string             `bson:"product_code"`
	ConsumptionPerUnitArea string             `bson:"consumption_per_unit_area"`
	BreakagePercent        string             `bson:"breakage_percent"`
	CorrectionFactor       string             `bson:"correction_factor"`
	CalculationMode        string             `bson:"calculation_mode"`
	CustomFormula          string             `bson:"custom_formula,omitempty"`
	Order                  int                `bson:"order"`
	UnitValue              string             `bson:"unit_value"`
	ValuePerUnitArea       string             `bson:"value_per_unit_area"`
	CreatedAt              time.Time          `bson:"created_at"`
	UpdatedAt              time.Time          `bson:"updated_at"`
}

func (d itemDocument) toModel() (model.CompositionLineItem, error) {
	fields := [...]string{d.ConsumptionPerUnitArea, d.BreakagePercent, d.CorrectionFactor, d.UnitValue, d.ValuePerUnitArea}
	decimals := make([]decimal.Decimal, len(fields))
	for i, s := range fields {
		dec, err := decimal.NewFromString(s)
		if err != nil {
			return model.CompositionLineItem{}, err
		}
		decimals[i] = dec
	}
	return model.CompositionLineItem{
		ID:                     d.ID,
		CompositionID:          d.CompositionID,
		ProductCode:            d.ProductCode,
		ConsumptionPerUnitArea: decimals[0],
		BreakagePercent:        decimals[1],
		CorrectionFactor:       decimals[2],
		CalculationMode:        model.CalcMode(d.CalculationMode),
		CustomFormula:          d.CustomFormula,
		Order:                  d.Order,
		UnitValue:              decimals[3],
		ValuePerUnitArea:       decimals[4],
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}, nil
}

func itemToDocument(item *model.CompositionLineItem) itemDocument {
	return itemDocument{
		ID:                     item.ID,
		CompositionID:          item.CompositionID,
		ProductCode:            item.ProductCode,
		ConsumptionPerUnitArea: item.ConsumptionPerUnitArea.String(),
		BreakagePercent:        item.BreakagePercent.String(),
		CorrectionFactor:       item.CorrectionFactor.String(),
		CalculationMode:        string(item.CalculationMode),
		CustomFormula:          item.CustomFormula,
		Order:                  item.Order,
		UnitValue:              item.UnitValue.String(),
		ValuePerUnitArea:       item.ValuePerUnitArea.String(),
		CreatedAt:              item.CreatedAt,
		UpdatedAt:              item.UpdatedAt,
	}
}

// CompositionsRepository provides composition operations backed by MongoDB.
type CompositionsRepository struct {
	compositions *mongo.Collection
	items        *mongo.Collection
}

// NewCompositionsRepository creates a new compositions repository.
func NewCompositionsRepository(db *MongoDB) *CompositionsRepository {
	return &CompositionsRepository{
		compositions: db.Compositions,
		items:        db.CompositionItems,
	}
}

// CreateComposition inserts an empty composition with a zero total.
func (r *CompositionsRepository) CreateComposition(ctx context.Context, name string) (*model.Composition, error) {
	now := time.Now().UTC()
	doc := compositionDocument{
		ID:                    primitive.NewObjectID(),
		Name:                  name,
		TotalValuePerUnitArea: decimal.Zero.String(),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if _, err := r.compositions.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	comp, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

// GetComposition returns the composition by id.
func (r *CompositionsRepository) GetComposition(ctx context.Context, id primitive.ObjectID) (*model.Composition, error) {
	var doc compositionDocument
	err := r.compositions.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCompositionNotFound
	}
	if err != nil {
		return nil, err
	}
	comp, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

// ListCompositions returns all compositions sorted by name.
func (r *CompositionsRepository) ListCompositions(ctx context.Context) ([]model.Composition, error) {
	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.compositions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var out []model.Composition
	for cursor.Next(ctx) {
		var doc compositionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		comp, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, comp)
	}
	return out, cursor.Err()
}

// DeleteComposition removes the composition and cascades to its items,
// which it owns exclusively.
func (r *CompositionsRepository) DeleteComposition(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.items.DeleteMany(ctx, bson.M{"composition_id": id}); err != nil {
		return err
	}
	result, err := r.compositions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrCompositionNotFound
	}
	return nil
}

// UpdateTotal persists the recomputed cached total.
func (r *CompositionsRepository) UpdateTotal(ctx context.Context, id primitive.ObjectID, total decimal.Decimal) error {
	update := bson.M{"$set": bson.M{
		"total_value_per_unit_area": total.String(),
		"updated_at":                time.Now().UTC(),
	}}
	result, err := r.compositions.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrCompositionNotFound
	}
	return nil
}

// InsertItem inserts a line item and returns it with its assigned id.
func (r *CompositionsRepository) InsertItem(ctx context.Context, item *model.CompositionLineItem) (*model.CompositionLineItem, error) {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	doc := itemToDocument(item)
	if _, err := r.items.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem returns the line item by id.
func (r *CompositionsRepository) GetItem(ctx context.Context, id primitive.ObjectID) (*model.CompositionLineItem, error) {
	var doc itemDocument
	err := r.items.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCompositionNotFound
	}
	if err != nil {
		return nil, err
	}
	item, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns the composition's items sorted by display order.
func (r *CompositionsRepository) ListItems(ctx context.Context, compositionID primitive.ObjectID) ([]model.CompositionLineItem, error) {
	opts := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := r.items.Find(ctx, bson.M{"composition_id": compositionID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var out []model.CompositionLineItem
	for cursor.Next(ctx) {
		var doc itemDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		item, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, cursor.Err()
}

// UpdateItem replaces the stored line item.
func (r *CompositionsRepository) UpdateItem(ctx context.Context, item *model.CompositionLineItem) error {
	doc := itemToDocument(item)
	result, err := r.items.ReplaceOne(ctx, bson.M{"_id": item.ID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrCompositionNotFound
	}
	return nil
}

// DeleteItem removes the line item.
func (r *CompositionsRepository) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.items.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrCompositionNotFound
	}
	return nil
}

// MaxOrder returns the highest order among the composition's items in a
// single query, so concurrent inserts cannot observe a stale scan.
func (r *CompositionsRepository) MaxOrder(ctx context.Context, compositionID primitive.ObjectID) (int, error) {
	opts := options.FindOne().
		SetSort(bson.M{"order": -1}).
		SetProjection(bson.M{"order": 1})

	var doc struct {
		Order int `bson:"order"`
	}
	err := r.items.FindOne(ctx, bson.M{"composition_id": compositionID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Order, nil
}

// UpdateOrders bulk-assigns new display orders in one write.
func (r *CompositionsRepository) UpdateOrders(ctx context.Context, compositionID primitive.ObjectID, assignments []OrderAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(assignments))
	for _, asn := range assignments {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": asn.ItemID, "composition_id": compositionID}).
			SetUpdate(bson.M{"$set": bson.M{"order": asn.Order, "updated_at": now}}))
	}

	_, err := r.items.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}
