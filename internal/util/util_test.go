package util

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"arenasync/internal/core"
)

func TestParseEnvList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"空字符串", "", nil},
		{"单个值", "openAI", []string{"openAI"}},
		{"多个值", "openAI,anthropic,Google", []string{"openAI", "anthropic", "Google"}},
		{"值带空格", "openAI, anthropic , Google", []string{"openAI", "anthropic", "Google"}},
		{"包含空值", "openAI,,anthropic", []string{"openAI", "anthropic"}},
		{"末尾逗号", "openAI,anthropic,", []string{"openAI", "anthropic"}},
		{"全空格值", "  ,  ,  ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseEnvList(tt.input)
			if tt.expected == nil {
				if result != nil {
					t.Errorf("期望 nil，实际 %v", result)
				}
				return
			}
			if len(result) != len(tt.expected) {
				t.Errorf("期望长度 %d，实际 %d", len(tt.expected), len(result))
				return
			}
			for i, expected := range tt.expected {
				if result[i] != expected {
					t.Errorf("索引 %d: 期望 '%s'，实际 '%s'", i, expected, result[i])
				}
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name, input, replacement, expected string
		prefixLen, suffixLen               int
	}{
		{"短字符串不截断", "short", "...", "short", 3, 3},
		{"超过阈值截断", "1234567890", "...", "123...890", 3, 3},
		{"只保留后缀", "1234567890", "...", "...7890", 0, 4},
		{"只保留前缀", "1234567890", "...", "1234...", 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateString(tt.input, tt.prefixLen, tt.suffixLen, tt.replacement)
			if result != tt.expected {
				t.Errorf("期望 '%s'，实际 '%s'", tt.expected, result)
			}
		})
	}
}

func TestGenerateRunID(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRunID()
		if len(id) != 36 {
			t.Fatalf("运行ID应为36位UUID，实际: '%s'", id)
		}
		if ids[id] {
			t.Errorf("生成了重复的ID: %s", id)
		}
		ids[id] = true
	}
}

func TestGetEnvWithDefault(t *testing.T) {
	tests := []struct {
		name, key, setValue, defaultValue, expected string
	}{
		{"使用默认值", "ARENASYNC_TEST_NOT_SET", "", "default_value", "default_value"},
		{"使用环境变量值", "ARENASYNC_TEST_SET", "actual_value", "default_value", "actual_value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.setValue)
			result := GetEnvWithDefault(tt.key, tt.defaultValue)
			if result != tt.expected {
				t.Errorf("期望 '%s'，实际 '%s'", tt.expected, result)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
		valid    bool
	}{
		{"未设置", "", 30, true},
		{"合法值", "10", 10, true},
		{"带空格", " 15 ", 15, true},
		{"非数字", "abc", 30, false},
		{"零", "0", 30, false},
		{"负数", "-5", 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ARENASYNC_TEST_INT", tt.value)
			result, valid := GetEnvInt("ARENASYNC_TEST_INT", 30)
			if result != tt.expected || valid != tt.valid {
				t.Errorf("期望 (%d, %v)，实际 (%d, %v)", tt.expected, tt.valid, result, valid)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"", false},
		{"yes", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("ARENASYNC_TEST_BOOL", tt.value)
			if result := GetEnvBool("ARENASYNC_TEST_BOOL"); result != tt.expected {
				t.Errorf("GetEnvBool(%q) = %v，期望 %v", tt.value, result, tt.expected)
			}
		})
	}
}

func TestNewGetRequest(t *testing.T) {
	req, err := NewGetRequest(context.Background(), "https://arena.ai/api/v1/leaderboard", "application/json")
	if err != nil {
		t.Fatalf("创建请求失败: %v", err)
	}
	if req.Method != http.MethodGet {
		t.Errorf("期望 GET，实际 %s", req.Method)
	}
	if req.Header.Get("User-Agent") != core.HTTPUserAgent {
		t.Errorf("User-Agent 不符: %s", req.Header.Get("User-Agent"))
	}
	if req.Header.Get("Accept") != "application/json" {
		t.Errorf("Accept 不符: %s", req.Header.Get("Accept"))
	}
}

func TestValidateRequestTarget(t *testing.T) {
	tests := []struct {
		name        string
		rawURL      string
		req         *http.Request
		expectError bool
	}{
		{name: "nil请求", expectError: true},
		{name: "缺少URL", req: &http.Request{}, expectError: true},
		{name: "非法scheme", rawURL: "file:///etc/passwd", expectError: true},
		{name: "缺少host", rawURL: "http:///leaderboard", expectError: true},
		{name: "合法https地址", rawURL: "https://lmarena.ai/leaderboard"},
		{name: "合法http地址", rawURL: "http://127.0.0.1:8080/api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if req == nil && tt.rawURL != "" {
				var err error
				req, err = http.NewRequest(http.MethodGet, tt.rawURL, nil)
				if err != nil {
					t.Fatalf("创建请求失败: %v", err)
				}
			}
			err := ValidateRequestTarget(req)
			if tt.expectError != (err != nil) {
				t.Fatalf("期望错误=%v，实际 %v", tt.expectError, err)
			}
		})
	}
}

func TestReadResponseBody(t *testing.T) {
	ok := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`[]`))}
	body, err := ReadResponseBody(ok)
	if err != nil || string(body) != "[]" {
		t.Fatalf("期望读取成功，实际 body=%q err=%v", body, err)
	}

	bad := &http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(strings.NewReader("upstream down"))}
	_, err = ReadResponseBody(bad)
	if !errors.Is(err, core.ErrUnexpectedStatus) {
		t.Fatalf("期望 ErrUnexpectedStatus，实际 %v", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("错误信息应包含状态码: %v", err)
	}
}

func TestJSONHelpers(t *testing.T) {
	entry := core.MappingEntry{Provider: "openAI", ModelID: "gpt-a"}
	data, err := MarshalJSON(entry)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	var decoded core.MappingEntry
	if err := UnmarshalJSON(data, &decoded); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if decoded != entry {
		t.Errorf("期望 %+v，实际 %+v", entry, decoded)
	}

	indented, err := MarshalJSONIndent(entry)
	if err != nil {
		t.Fatalf("缩进序列化失败: %v", err)
	}
	if !strings.Contains(string(indented), "\n  \"provider\"") {
		t.Errorf("缩进输出格式不符: %s", indented)
	}
}
