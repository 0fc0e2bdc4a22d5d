package graphqlserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"procure.GO/core/apperr"
	"procure.GO/graphql"
	"procure.GO/model/entity"
	orderRepo "procure.GO/model/repository/order"
	partRepo "procure.GO/model/repository/part"
	catalogService "procure.GO/service/catalog"
	orderService "procure.GO/service/order"
)

// RootResolver implements the Query fields.
type RootResolver struct {
	db     *gorm.DB
	orders *orderService.Service
	search *catalogService.SearchService
}

func (r *RootResolver) Orders(ctx context.Context) ([]*OrderResolver, error) {
	orders, err := r.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*OrderResolver, 0, len(orders))
	for i := range orders {
		out = append(out, &OrderResolver{db: r.db, po: &orders[i]})
	}
	return out, nil
}

func (r *RootResolver) Order(ctx context.Context, args struct{ Number string }) (*OrderResolver, error) {
	view, err := r.orders.Get(ctx, args.Number)
	if apperr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &OrderResolver{db: r.db, po: view.Order, lines: view.Lines}, nil
}

func (r *RootResolver) Part(ctx context.Context, args struct{ PartNumber string }) (*PartResolver, error) {
	p, err := partRepo.NewPartRepository(r.db).FindByPartNumber(ctx, args.PartNumber)
	if err != nil || p == nil {
		return nil, err
	}
	return &PartResolver{p: *p}, nil
}

type SearchPartsArgs struct {
	Query string
	Limit int32
}

func (r *RootResolver) SearchParts(ctx context.Context, args SearchPartsArgs) ([]*PartResolver, error) {
	limit := 20
	if args.Limit > 0 {
		limit = int(args.Limit)
	}
	parts, err := r.search.Search(ctx, args.Query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*PartResolver, 0, len(parts))
	for _, p := range parts {
		out = append(out, &PartResolver{p: p})
	}
	return out, nil
}

type OrderResolver struct {
	db    *gorm.DB
	po    *entity.PurchaseOrder
	lines []entity.POLine
}

func (o *OrderResolver) ID() gql.ID           { return gql.ID(strconv.FormatUint(uint64(o.po.ID), 10)) }
func (o *OrderResolver) PoNumber() string     { return o.po.Number() }
func (o *OrderResolver) CreationDate() string { return time.Time(o.po.CreationDate).Format(graphql.DateLayout) }
func (o *OrderResolver) Supplier() string     { return o.po.Supplier }
func (o *OrderResolver) Status() string       { return o.po.Status }
func (o *OrderResolver) TotalPrice() string   { return o.po.TotalPrice.StringFixed(2) }

func (o *OrderResolver) Lines(ctx context.Context) ([]*LineResolver, error) {
	lines := o.lines
	if lines == nil {
		var err error
		lines, err = orderRepo.NewOrderRepository(o.db).Lines(ctx, o.po.ID)
		if err != nil {
			return nil, err
		}
	}
	out := make([]*LineResolver, 0, len(lines))
	for _, l := range lines {
		out = append(out, &LineResolver{l: l})
	}
	return out, nil
}

type LineResolver struct {
	l entity.POLine
}

func (r *LineResolver) ID() gql.ID          { return gql.ID(strconv.FormatUint(uint64(r.l.ID), 10)) }
func (r *LineResolver) Item() int32         { return int32(r.l.Item) }
func (r *LineResolver) PartNumber() string  { return r.l.PartNumber }
func (r *LineResolver) Description() string { return r.l.Description }
func (r *LineResolver) Quantity() int32     { return int32(r.l.Quantity) }
func (r *LineResolver) ReqDate() string     { return time.Time(r.l.ReqDate).Format(graphql.DateLayout) }
func (r *LineResolver) Unit() string        { return r.l.Unit }
func (r *LineResolver) UnitPrice() string   { return r.l.UnitPrice.StringFixed(2) }
func (r *LineResolver) LineTotal() string   { return r.l.LineTotal.StringFixed(2) }

type PartResolver struct {
	p entity.Part
}

func (r *PartResolver) PartNumber() string  { return r.p.PartNumber }
func (r *PartResolver) Moq() int32          { return int32(r.p.MOQ) }
func (r *PartResolver) Unit() string        { return r.p.Unit }
func (r *PartResolver) UnitPrice() string   { return r.p.UnitPrice.StringFixed(2) }
func (r *PartResolver) Supplier() string    { return r.p.Supplier }
func (r *PartResolver) LeadTime() int32     { return int32(r.p.LeadTime) }
func (r *PartResolver) Family() string      { return r.p.Family }
func (r *PartResolver) Description() string { return r.p.Description }

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	root := &RootResolver{
		db:     db,
		orders: orderService.NewService(db),
		search: catalogService.NewSearchService(db),
	}
	return gql.ParseSchema(graphql.Schema, root)
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}

// QueryHandler serves GraphQL over GET: query, operationName and a JSON
// encoded variables parameter are read from the URL.
func QueryHandler(schema *gql.Schema) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var vars map[string]interface{}
		if raw := q.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &vars); err != nil {
				http.Error(w, "variables: "+err.Error(), http.StatusBadRequest)
				return
			}
		}
		resp := schema.Exec(r.Context(), q.Get("query"), q.Get("operationName"), vars)
		body, err := json.Marshal(resp)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	})
}
