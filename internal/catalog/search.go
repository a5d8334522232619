// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is a full-text MATCH expression over epistle bodies.
	Query string

	// Book restricts results to one book when set. types.NoBook selects
	// epistles that precede every Book heading.
	Book *int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Entry is one cataloged epistle.
type Entry struct {
	Book    int    `json:"book" yaml:"book"`
	Epistle int    `json:"epistle" yaml:"epistle"`
	File    string `json:"file" yaml:"file"`
	Heading string `json:"heading" yaml:"heading"`
	Digest  string `json:"blake3" yaml:"blake3"`
	Body    string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Search returns cataloged epistles ordered by book then epistle. With a
// query, only epistles whose body matches it are returned.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT e.book, e.epistle, e.file, e.heading, e.digest, e.body
			FROM epistles_fts
			JOIN epistles e ON e.id = epistles_fts.docid
			WHERE epistles_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT e.book, e.epistle, e.file, e.heading, e.digest, e.body
			FROM epistles e
			WHERE 1=1`)
	}

	if opts.Book != nil {
		qb.WriteString(` AND e.book = ?`)
		args = append(args, *opts.Book)
	}

	qb.WriteString(` ORDER BY e.book, e.epistle LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Book, &e.Epistle, &e.File, &e.Heading, &e.Digest, &e.Body); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return results, nil
}

// Count returns the number of cataloged epistles and distinct books.
func (s *Store) Count(ctx context.Context) (epistles, books int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT count(*), count(DISTINCT book) FROM epistles`,
	).Scan(&epistles, &books)
	if err != nil {
		return 0, 0, fmt.Errorf("counting epistles: %w", err)
	}
	return epistles, books, nil
}
