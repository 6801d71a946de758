// Copyright 2025 Skylark Media, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file wraps the BigQuery streaming inserter with a rate limiter and
// retry loop. BigQuery enforces per-table streaming quotas; a burst of
// completed analyses would otherwise trip them and surface as opaque 403s
// deep inside the pipeline.
//
// Structs:
//   - QuotaAwareInserter: Decorates a *bigquery.Inserter with a token-bucket
//     limiter and bounded retries for transient failures.
package cloud

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"golang.org/x/time/rate"
)

// MaxInsertRetries bounds how many times a failed streaming insert is
// retried before the error propagates.
const MaxInsertRetries = 3

// QuotaAwareInserter decorates a BigQuery table inserter with a rate
// limiter. Callers use Put exactly as they would on the raw inserter; the
// wrapper blocks until the insert fits the configured budget.
type QuotaAwareInserter struct {
	inserter *bigquery.Inserter
	limiter  *rate.Limiter
}

// NewQuotaAwareInserter wraps the given table's inserter with a limiter
// allowing insertsPerSecond sustained inserts. A non-positive budget
// disables limiting.
//
// Inputs:
//   - table: The BigQuery table whose inserter is wrapped.
//   - insertsPerSecond: The sustained streaming insert budget.
//
// Outputs:
//   - *QuotaAwareInserter: The wrapped, rate-limited inserter.
func NewQuotaAwareInserter(table *bigquery.Table, insertsPerSecond int) *QuotaAwareInserter {
	limit := rate.Inf
	burst := 1
	if insertsPerSecond > 0 {
		limit = rate.Every(time.Second / time.Duration(insertsPerSecond))
		burst = insertsPerSecond
	}
	return &QuotaAwareInserter{
		inserter: table.Inserter(),
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Put streams src into the table, waiting for limiter capacity first and
// retrying transient failures with linear backoff. Row-level errors from
// BigQuery (bigquery.PutMultiError) are not retried: resending the batch
// would duplicate the rows that did land.
func (q *QuotaAwareInserter) Put(ctx context.Context, src interface{}) error {
	if err := q.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	var err error
	for attempt := 0; attempt <= MaxInsertRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		err = q.inserter.Put(ctx, src)
		if err == nil {
			return nil
		}
		if _, partial := err.(bigquery.PutMultiError); partial {
			return err
		}
	}
	return fmt.Errorf("streaming insert failed after %d retries: %w", MaxInsertRetries, err)
}
