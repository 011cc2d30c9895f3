package service

import "errors"

var (
	// ErrNotFound 条目不存在（活跃集合与回收站中均未找到）.
	ErrNotFound = errors.New("item not found")
	// ErrNoBlob 文件没有对象存储数据块.
	ErrNoBlob = errors.New("file has no stored blob")
	// ErrTooLarge 上传超出大小上限.
	ErrTooLarge = errors.New("upload exceeds size limit")
	// ErrShareExpired 分享已过期.
	ErrShareExpired = errors.New("share link expired")
)
