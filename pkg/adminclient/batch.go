package adminclient

import (
	"context"
	"errors"
	"sync"
)

// ==================== 批量执行器 ====================

// BatchItemResult 单条结果
type BatchItemResult struct {
	Index   int
	ID      string
	Success bool
	Message string
}

// BatchSummary 聚合结果
// 无事务语义：各条相互独立，部分失败不回滚已成功的条目
type BatchSummary struct {
	Total   int
	Succeed int
	Failed  int
	Results []BatchItemResult
}

// BatchFunc 执行单条的请求
type BatchFunc func(ctx context.Context, index int, id string) error

// RunBatch 并发执行，每条一个请求，全部完成后汇总
// 不限制并发数，结果按输入顺序排列
func RunBatch(ctx context.Context, ids []string, fn BatchFunc) BatchSummary {
	summary := BatchSummary{
		Total:   len(ids),
		Results: make([]BatchItemResult, len(ids)),
	}
	if len(ids) == 0 {
		return summary
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(index int, itemID string) {
			defer wg.Done()
			result := BatchItemResult{Index: index, ID: itemID, Success: true}
			if err := fn(ctx, index, itemID); err != nil {
				result.Success = false
				result.Message = batchErrMessage(err)
			}
			summary.Results[index] = result
		}(i, id)
	}
	wg.Wait()

	for _, r := range summary.Results {
		if r.Success {
			summary.Succeed++
		} else {
			summary.Failed++
		}
	}
	return summary
}

func batchErrMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "网络错误"
	}
	return err.Error()
}

// ==================== 常用批量动作 ====================

// BatchMerchantAction 对选中商家逐个执行状态动作
func BatchMerchantAction(ctx context.Context, client *Client, action string, ids []string) BatchSummary {
	return RunBatch(ctx, ids, func(ctx context.Context, _ int, id string) error {
		result := client.Patch(ctx, "/api/merchants/"+id+"/status",
			map[string]string{"action": action})
		return result.Err
	})
}

// BatchDeleteMerchants 逐个删除选中商家
func BatchDeleteMerchants(ctx context.Context, client *Client, ids []string) BatchSummary {
	return RunBatch(ctx, ids, func(ctx context.Context, _ int, id string) error {
		result := client.Delete(ctx, "/api/merchants/"+id)
		return result.Err
	})
}
