package model

import "testing"

func TestMerchantStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from MerchantStatus
		to   MerchantStatus
		want bool
	}{
		// 审核流
		{MerchantStatusDraft, MerchantStatusPending, true},
		{MerchantStatusPending, MerchantStatusApproved, true},
		{MerchantStatusPending, MerchantStatusRejected, true},
		{MerchantStatusRejected, MerchantStatusPending, true},

		// 不允许跳级
		{MerchantStatusDraft, MerchantStatusApproved, false},
		{MerchantStatusDraft, MerchantStatusRecommended, false},
		{MerchantStatusRejected, MerchantStatusApproved, false},

		// 过审后进评级/封停
		{MerchantStatusApproved, MerchantStatusRecommended, true},
		{MerchantStatusApproved, MerchantStatusAvoid, true},
		{MerchantStatusApproved, MerchantStatusSuspended, true},
		{MerchantStatusSuspended, MerchantStatusApproved, true},
		{MerchantStatusSuspended, MerchantStatusDraft, false},

		// 评级之间互切，但不可退回审核态
		{MerchantStatusRecommended, MerchantStatusAvoid, true},
		{MerchantStatusAvoid, MerchantStatusTrusted, true},
		{MerchantStatusTrusted, MerchantStatusSuspended, true},
		{MerchantStatusRecommended, MerchantStatusPending, false},
		{MerchantStatusAvoid, MerchantStatusDraft, false},

		// 自转移允许（幂等）
		{MerchantStatusApproved, MerchantStatusApproved, true},
	}

	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("%s -> %s: 期望 %v, 实际 %v", c.from, c.to, c.want, got)
		}
	}
}

func TestMerchantStatus_Valid(t *testing.T) {
	if !MerchantStatusControversial.Valid() {
		t.Fatal("controversial 是合法状态")
	}
	if MerchantStatus("banana").Valid() {
		t.Fatal("未知值不应通过校验")
	}
}

func TestMerchantStatus_Route(t *testing.T) {
	if MerchantStatusDraft.Route() != RouteEdit || MerchantStatusPending.Route() != RouteEdit {
		t.Fatal("草稿/待审应跳编辑页")
	}
	if MerchantStatusApproved.Route() != RouteDetail || MerchantStatusAvoid.Route() != RouteDetail {
		t.Fatal("其余状态应跳详情页")
	}
}
