/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package id

import (
	"sync"
	"testing"
)

func TestIDsUniqueAcrossKinds(t *testing.T) {
	a := NewAllocator()
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		ids := []int64{int64(a.NextLayerID()), int64(a.NextPageID()), int64(a.NextModalID())}
		for _, v := range ids {
			if seen[v] {
				t.Fatalf("duplicate id %d", v)
			}
			seen[v] = true
		}
	}
}

func TestIDsUniqueConcurrent(t *testing.T) {
	a := NewAllocator()
	const workers = 8
	const perWorker = 1000
	results := make([][]LayerID, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]LayerID, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				ids = append(ids, a.NextLayerID())
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()
	seen := map[LayerID]bool{}
	for _, ids := range results {
		for _, v := range ids {
			if seen[v] {
				t.Fatalf("duplicate id %d under concurrency", v)
			}
			seen[v] = true
		}
	}
}

func TestSetMinLayerID(t *testing.T) {
	a := NewAllocator()
	_ = a.NextLayerID()
	a.SetMinLayerID(500)
	if got := a.NextLayerID(); got < 500 {
		t.Fatalf("expected id >= 500 after SetMinLayerID, got %d", got)
	}
	// a lower floor must not rewind the counter
	a.SetMinLayerID(10)
	if got := a.NextLayerID(); got < 500 {
		t.Fatalf("floor rewound: got %d", got)
	}
}
