package store

import "testing"

// TestBuildStorageKey 测试对象键构造.
func TestBuildStorageKey(t *testing.T) {
	key := BuildStorageKey("alice@example.com", "9c1d4fd0", "my report.pdf")
	want := "alice@example.com/9c1d4fd0-my_report.pdf"

	if key != want {
		t.Errorf("BuildStorageKey = %q, want %q", key, want)
	}
}

// TestSanitizeName 测试文件名清理.
func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain.txt", "plain.txt"},
		{"a/b\\c.txt", "a_b_c.txt"},
		{"q?&#.png", "q_&_.png"},
		{"with space.doc", "with_space.doc"},
		{"100%.pdf", "100_.pdf"},
	}

	for _, c := range cases {
		if got := sanitizeName(c.in); got != c.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
