package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestRunBatch_PartialFailure(t *testing.T) {
	// 三条里中间一条失败：其余两条照常成功，不回滚
	summary := RunBatch(context.Background(), []string{"1", "2", "3"},
		func(ctx context.Context, _ int, id string) error {
			if id == "2" {
				return errors.New("临时故障")
			}
			return nil
		})

	if summary.Total != 3 || summary.Succeed != 2 || summary.Failed != 1 {
		t.Fatalf("汇总不对: %+v", summary)
	}
	if summary.Results[0].Success != true || summary.Results[2].Success != true {
		t.Fatal("成功条目的逐条结果不对")
	}
	if summary.Results[1].Success || summary.Results[1].Message != "临时故障" {
		t.Fatalf("失败条目的逐条结果不对: %+v", summary.Results[1])
	}
	// 结果按输入顺序排列
	for i, r := range summary.Results {
		if r.Index != i {
			t.Fatalf("结果顺序错乱: %+v", summary.Results)
		}
	}
}

func TestRunBatch_Empty(t *testing.T) {
	summary := RunBatch(context.Background(), nil, func(ctx context.Context, _ int, _ string) error {
		t.Fatal("空输入不应执行任何请求")
		return nil
	})
	if summary.Total != 0 || len(summary.Results) != 0 {
		t.Fatalf("空输入的汇总不对: %+v", summary)
	}
}

func TestBatchDeleteMerchants(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/merchants/")
		mu.Lock()
		seen[id] = true
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if id == "8" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "记录不存在"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	summary := BatchDeleteMerchants(context.Background(), NewClient(srv.URL), []string{"7", "8", "9"})

	if summary.Succeed != 2 || summary.Failed != 1 {
		t.Fatalf("汇总不对: %+v", summary)
	}
	if summary.Results[1].Message != "记录不存在" {
		t.Fatalf("API 错误信息应透传到逐条结果: %+v", summary.Results[1])
	}

	// 每个 id 恰好一个请求
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 3 {
		t.Fatalf("应对 3 个 id 各发一次请求, 实际 %v", seen)
	}
}
