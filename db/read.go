package db

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"scribe/model"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

type scanner interface {
	Scan(dest ...any) error
}

func encodeCursor(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func decodeCursor(c string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(c)
	if err != nil {
		return "", fmt.Errorf("invalid cursor %q", c)
	}
	return string(b), nil
}

func pageSize(first int) uint64 {
	switch {
	case first <= 0:
		return defaultPageSize
	case first > maxPageSize:
		return maxPageSize
	}
	return uint64(first)
}

// after narrows a listing ordered by key to rows past the cursor.
func after(s sq.SelectBuilder, key, cursor string) (sq.SelectBuilder, error) {
	if cursor == "" {
		return s, nil
	}
	k, err := decodeCursor(cursor)
	if err != nil {
		return s, err
	}
	return s.Where(sq.Gt{key: k}), nil
}

func (h *Handler) count(ctx context.Context, from string, where sq.Sqlizer) (int64, error) {
	s := h.builder.Select("COUNT(*)").From(from)
	if where != nil {
		s = s.Where(where)
	}
	query, args, err := s.ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := h.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", from, err)
	}
	return n, nil
}

func loadModel(ctx context.Context, q queryRower, b sq.StatementBuilderType, name string) (model.Model, error) {
	query, args, err := modelColumns(b).Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return model.Model{}, err
	}
	m, err := scanModel(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Model{}, fmt.Errorf("%w: %s", model.ErrModelNotFound, name)
	}
	return m, err
}

func modelColumns(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select("name", "class_hash", "version", "layout", "event_id", "created_at").From("models")
}

func scanModel(s scanner) (model.Model, error) {
	var (
		m                            model.Model
		classHash, layout, createdAt string
		version                      int64
	)
	if err := s.Scan(&m.Name, &classHash, &version, &layout, &m.EventID, &createdAt); err != nil {
		return m, err
	}
	var err error
	if m.ClassHash, err = model.ParseFelt(classHash); err != nil {
		return m, fmt.Errorf("model %s class hash: %w", m.Name, err)
	}
	if err := json.Unmarshal([]byte(layout), &m.Schema); err != nil {
		return m, fmt.Errorf("model %s layout: %w", m.Name, err)
	}
	m.Version = int(version)
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

func (h *Handler) Model(ctx context.Context, name string) (model.Model, error) {
	return loadModel(ctx, h.db, h.builder, name)
}

// Models lists every registered model ordered by name.
func (h *Handler) Models(ctx context.Context) ([]model.Model, error) {
	query, args, err := modelColumns(h.builder).OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()
	var out []model.Model
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func entityColumns(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select("id", "keys", "model_names", "event_id", "created_at", "updated_at").From("entities")
}

func scanEntity(s scanner) (model.Entity, error) {
	var (
		e                               model.Entity
		keys, names, createdAt, updated string
	)
	if err := s.Scan(&e.ID, &keys, &names, &e.EventID, &createdAt, &updated); err != nil {
		return e, err
	}
	var err error
	if e.Keys, err = model.SplitFelts(keys); err != nil {
		return e, fmt.Errorf("entity %s keys: %w", e.ID, err)
	}
	e.ModelNames = splitModelNames(names)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updated)
	return e, nil
}

func (h *Handler) Entity(ctx context.Context, id string) (model.Entity, error) {
	query, args, err := entityColumns(h.builder).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return model.Entity{}, err
	}
	e, err := scanEntity(h.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("%w: %s", model.ErrEntityNotFound, id)
	}
	return e, err
}

// Entities lists entities ordered by id. Keys, when given, must prefix the
// entity key tuple.
func (h *Handler) Entities(ctx context.Context, q model.EntityQuery) (model.Page[model.Entity], error) {
	var page model.Page[model.Entity]
	var where sq.Sqlizer
	if len(q.Keys) > 0 {
		where = sq.Like{"keys": model.JoinFelts(q.Keys) + "%"}
	}
	total, err := h.count(ctx, "entities", where)
	if err != nil {
		return page, err
	}
	page.TotalCount = total

	s := entityColumns(h.builder).OrderBy("id").Limit(pageSize(q.First))
	if where != nil {
		s = s.Where(where)
	}
	if s, err = after(s, "id", q.After); err != nil {
		return page, err
	}
	query, args, err := s.ToSql()
	if err != nil {
		return page, err
	}
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return page, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return page, err
		}
		page.Items = append(page.Items, e)
		page.Cursors = append(page.Cursors, encodeCursor(e.ID))
	}
	return page, rows.Err()
}

var filterOps = map[string]func(col string, v any) sq.Sqlizer{
	"EQ":  func(col string, v any) sq.Sqlizer { return sq.Eq{col: v} },
	"NEQ": func(col string, v any) sq.Sqlizer { return sq.NotEq{col: v} },
	"GT":  func(col string, v any) sq.Sqlizer { return sq.Gt{col: v} },
	"GTE": func(col string, v any) sq.Sqlizer { return sq.GtOrEq{col: v} },
	"LT":  func(col string, v any) sq.Sqlizer { return sq.Lt{col: v} },
	"LTE": func(col string, v any) sq.Sqlizer { return sq.LtOrEq{col: v} },
}

func recordWhere(s *model.Struct, filters []model.Filter) (sq.Sqlizer, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	and := sq.And{}
	for _, f := range filters {
		m, ok := s.Member(f.Member)
		if !ok {
			return nil, fmt.Errorf("model %s has no member %q", s.Name, f.Member)
		}
		op, ok := filterOps[f.Op]
		if !ok {
			return nil, fmt.Errorf("unknown comparison %q", f.Op)
		}
		v, err := filterValue(m.Ty, f.Value)
		if err != nil {
			return nil, fmt.Errorf("filter on %s: %w", f.Member, err)
		}
		and = append(and, op(quote(m.Name), v))
	}
	return and, nil
}

func recordColumns(b sq.StatementBuilderType, m model.Model) sq.SelectBuilder {
	names := append([]string{}, internalColumns...)
	for _, c := range columns(m.Schema) {
		names = append(names, quote(c.name))
	}
	return b.Select(names...).From(quote(m.Name))
}

func scanRecord(s scanner, m model.Model) (model.Record, error) {
	r := model.Record{Model: m.Name}
	var createdAt, updatedAt string
	stored := make([]sql.NullString, len(columns(m.Schema)))
	dest := []any{&r.EntityID, &r.EventID, &createdAt, &updatedAt}
	for i := range stored {
		dest = append(dest, &stored[i])
	}
	if err := s.Scan(dest...); err != nil {
		return r, err
	}
	value, err := scanValue(m.Schema, stored)
	if err != nil {
		return r, fmt.Errorf("%s record %s: %w", m.Name, r.EntityID, err)
	}
	r.Value = value
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	for _, k := range value.Struct.Keys() {
		if k.Ty.Kind == model.KindPrimitive && k.Ty.Primitive.Value == nil {
			continue
		}
		if r.Keys, err = k.Ty.Serialize(r.Keys); err != nil {
			return r, fmt.Errorf("%s record %s key %s: %w", m.Name, r.EntityID, k.Name, err)
		}
	}
	return r, nil
}

// Records lists one model's records ordered by entity id.
func (h *Handler) Records(ctx context.Context, modelName string, q model.RecordQuery) (model.Page[model.Record], error) {
	var page model.Page[model.Record]
	m, err := h.Model(ctx, modelName)
	if err != nil {
		return page, err
	}
	s, err := m.Struct()
	if err != nil {
		return page, err
	}
	where, err := recordWhere(s, q.Where)
	if err != nil {
		return page, err
	}
	if page.TotalCount, err = h.count(ctx, quote(m.Name), where); err != nil {
		return page, err
	}

	sel := recordColumns(h.builder, m).OrderBy(colEntityID).Limit(pageSize(q.First))
	if where != nil {
		sel = sel.Where(where)
	}
	if sel, err = after(sel, colEntityID, q.After); err != nil {
		return page, err
	}
	query, args, err := sel.ToSql()
	if err != nil {
		return page, err
	}
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return page, fmt.Errorf("list %s records: %w", m.Name, err)
	}
	defer rows.Close()
	for rows.Next() {
		r, err := scanRecord(rows, m)
		if err != nil {
			return page, err
		}
		page.Items = append(page.Items, r)
		page.Cursors = append(page.Cursors, encodeCursor(r.EntityID))
	}
	return page, rows.Err()
}

func (h *Handler) Record(ctx context.Context, modelName, entityID string) (model.Record, error) {
	m, err := h.Model(ctx, modelName)
	if err != nil {
		return model.Record{}, err
	}
	query, args, err := recordColumns(h.builder, m).Where(sq.Eq{colEntityID: entityID}).ToSql()
	if err != nil {
		return model.Record{}, err
	}
	r, err := scanRecord(h.db.QueryRowContext(ctx, query, args...), m)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%w: %s has no record for %s", model.ErrEntityNotFound, modelName, entityID)
	}
	return r, err
}

// EntityRecords returns every record of an entity, in the order its models
// were first written.
func (h *Handler) EntityRecords(ctx context.Context, e model.Entity) ([]model.Record, error) {
	out := make([]model.Record, 0, len(e.ModelNames))
	for _, name := range e.ModelNames {
		r, err := h.Record(ctx, name, e.ID)
		if errors.Is(err, model.ErrEntityNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (h *Handler) Metadata(ctx context.Context, q model.PageQuery) (model.Page[model.Metadata], error) {
	var page model.Page[model.Metadata]
	var err error
	if page.TotalCount, err = h.count(ctx, "metadata", nil); err != nil {
		return page, err
	}
	s := h.builder.Select("id", "uri", "event_id", "created_at", "updated_at").
		From("metadata").OrderBy("id").Limit(pageSize(q.First))
	if s, err = after(s, "id", q.After); err != nil {
		return page, err
	}
	query, args, err := s.ToSql()
	if err != nil {
		return page, err
	}
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return page, fmt.Errorf("list metadata: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var md model.Metadata
		var createdAt, updatedAt string
		if err := rows.Scan(&md.ID, &md.URI, &md.EventID, &createdAt, &updatedAt); err != nil {
			return page, err
		}
		md.CreatedAt = parseTime(createdAt)
		md.UpdatedAt = parseTime(updatedAt)
		page.Items = append(page.Items, md)
		page.Cursors = append(page.Cursors, encodeCursor(md.ID))
	}
	return page, rows.Err()
}

// Events lists stored events in emission order. Keys, when given, must
// prefix the event keys.
func (h *Handler) Events(ctx context.Context, keys []model.Felt, q model.PageQuery) (model.Page[model.StoredEvent], error) {
	var page model.Page[model.StoredEvent]
	var where sq.Sqlizer
	if len(keys) > 0 {
		where = sq.Like{"keys": model.JoinFelts(keys) + "%"}
	}
	var err error
	if page.TotalCount, err = h.count(ctx, "events", where); err != nil {
		return page, err
	}
	s := h.builder.Select("id", "keys", "data", "transaction_hash", "created_at").
		From("events").OrderBy("id").Limit(pageSize(q.First))
	if where != nil {
		s = s.Where(where)
	}
	if s, err = after(s, "id", q.After); err != nil {
		return page, err
	}
	query, args, err := s.ToSql()
	if err != nil {
		return page, err
	}
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return page, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ev model.StoredEvent
		var keys, data, txHash, createdAt string
		if err := rows.Scan(&ev.ID, &keys, &data, &txHash, &createdAt); err != nil {
			return page, err
		}
		if ev.Keys, err = model.SplitFelts(keys); err != nil {
			return page, err
		}
		if ev.Data, err = model.SplitFelts(data); err != nil {
			return page, err
		}
		if ev.TransactionHash, err = model.ParseFelt(txHash); err != nil {
			return page, err
		}
		ev.CreatedAt = parseTime(createdAt)
		page.Items = append(page.Items, ev)
		page.Cursors = append(page.Cursors, encodeCursor(ev.ID))
	}
	return page, rows.Err()
}
