package service

import (
	"context"
	"sync"

	"reviewhub/internal/api/dto"
)

// runBulk 并发逐条执行批量操作
// 与前端逐条发请求的行为一致:无并发上限、无回滚，单条失败不影响其他条目，
// 逐条结果原样返回，由调用方决定如何汇总展示
func runBulk(ctx context.Context, ids []int64, fn func(ctx context.Context, id int64) error) []dto.BulkItemResult {
	results := make([]dto.BulkItemResult, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			if err := fn(ctx, id); err != nil {
				results[i] = dto.BulkItemResult{ID: id, OK: false, Error: err.Error()}
				return
			}
			results[i] = dto.BulkItemResult{ID: id, OK: true}
		}(i, id)
	}
	wg.Wait()

	return results
}
