package feast

import (
	"context"
	"testing"
)

// TestGrpcClient_GetOnlineFeatures 测试 gRPC 客户端的基本功能
// 注意：这是一个示例测试，实际使用时需要连接真实的 Feast 服务器
func TestGrpcClient_GetOnlineFeatures(t *testing.T) {
	t.Skip("需要连接真实的 Feast 服务器才能运行")

	ctx := context.Background()

	client, err := NewGrpcClient("localhost", 6565, "matchkit")
	if err != nil {
		t.Fatalf("创建客户端失败: %v", err)
	}
	defer client.Close()

	req := &GetOnlineFeaturesRequest{
		Features: []string{
			DefaultRiskScoreFeature,
			DefaultPartnerTierFeature,
		},
		EntityRows: []map[string]interface{}{
			{DefaultEntityKey: "c-001"},
			{DefaultEntityKey: "c-002"},
		},
		Project: "matchkit",
	}

	resp, err := client.GetOnlineFeatures(ctx, req)
	if err != nil {
		t.Fatalf("获取特征失败: %v", err)
	}

	if len(resp.FeatureVectors) != 2 {
		t.Errorf("期望 2 个特征向量，实际得到 %d 个", len(resp.FeatureVectors))
	}
	for i, fv := range resp.FeatureVectors {
		if len(fv.Values) == 0 {
			t.Errorf("特征向量 %d 为空", i)
		}
		t.Logf("特征向量 %d: %+v", i, fv.Values)
	}
}

// TestGrpcClient_RequestValidation 测试请求参数校验
func TestGrpcClient_RequestValidation(t *testing.T) {
	c := &GrpcClient{Project: ""}
	ctx := context.Background()

	if _, err := c.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		EntityRows: []map[string]interface{}{{DefaultEntityKey: "c-001"}},
	}); err == nil {
		t.Error("缺少特征名应该报错")
	}

	if _, err := c.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features: []string{DefaultRiskScoreFeature},
	}); err == nil {
		t.Error("缺少实体行应该报错")
	}

	if _, err := c.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   []string{DefaultRiskScoreFeature},
		EntityRows: []map[string]interface{}{{DefaultEntityKey: "c-001"}},
	}); err == nil {
		t.Error("客户端与请求均未指定项目应该报错")
	}
}

// TestConvertFromSDKValue 测试从 SDK 值类型转换（数值统一为 float64）
func TestConvertFromSDKValue(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  interface{}
	}{
		{"string", "Strategic Partner", "Strategic Partner"},
		{"int64", int64(7), float64(7)},
		{"int32", int32(7), float64(7)},
		{"float64", 3.14, 3.14},
		{"float32", float32(2), float64(2)},
		{"bool_true", true, float64(1)},
		{"bool_false", false, float64(0)},
		{"bytes", []byte("tier"), "tier"},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertFromSDKValue(tt.input); got != tt.want {
				t.Errorf("convertFromSDKValue(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
