package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/portafy/portafy/pkg/rule"
)

// renameRequest 用于测试 ValidateStruct.
type renameRequest struct {
	Name string `rule:"required"`
	Size int    `rule:"gte=0"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	valid := renameRequest{Name: "report.pdf", Size: 1024}

	err := rule.ValidateStruct(valid)
	if err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 缺少 Name
	missingName := renameRequest{Name: "", Size: 1024}

	err = rule.ValidateStruct(missingName)
	if err == nil {
		t.Error("Expected error for invalid struct (missing name), got nil")
	}

	// Size 为负
	negativeSize := renameRequest{Name: "report.pdf", Size: -1}

	err = rule.ValidateStruct(negativeSize)
	if err == nil {
		t.Error("Expected error for invalid struct (negative size), got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	err := rule.ValidateVar("user@example.com", "required,email")
	if err != nil {
		t.Errorf("Expected no error for valid email, got %v", err)
	}

	err = rule.ValidateVar("invalid-email", "required,email")
	if err == nil {
		t.Error("Expected error for invalid email, got nil")
	}

	err = rule.ValidateVar("9c1d4fd0-1e2f-4a6b-8a9c-0d1e2f3a4b5c", "uuid4")
	if err != nil {
		t.Errorf("Expected no error for valid uuid, got %v", err)
	}

	err = rule.ValidateVar("not-a-uuid", "uuid4")
	if err == nil {
		t.Error("Expected error for invalid uuid, got nil")
	}
}

// TestRegisterValidation 测试注册自定义验证.
func TestRegisterValidation(t *testing.T) {
	// 注册自定义验证：文件名不允许包含路径分隔符
	err := rule.RegisterValidation("safe_name", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		for _, r := range str {
			if r == '/' || r == '\\' {
				return false
			}
		}

		return true
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	err = rule.ValidateVar("notes.txt", "safe_name")
	if err != nil {
		t.Errorf("Expected no error for safe name, got %v", err)
	}

	err = rule.ValidateVar("../etc/passwd", "safe_name")
	if err == nil {
		t.Error("Expected error for name with separator, got nil")
	}
}

// TestRegisterAlias 测试注册别名.
func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("item_name", "required,min=1,max=255")

	err := rule.ValidateVar("a", "item_name")
	if err != nil {
		t.Errorf("Expected no error for valid name with alias, got %v", err)
	}

	err = rule.ValidateVar("", "item_name")
	if err == nil {
		t.Error("Expected error for empty name with alias, got nil")
	}
}
