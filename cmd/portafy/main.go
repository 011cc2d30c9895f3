// Package main 启动应用程序
package main

import "github.com/portafy/portafy/pkg/cmd"

//	@title			Portafy API
//	@version		1.0
//	@description	Portafy 是一个个人文件与作品集管理服务，提供文件上传、文件夹管理、回收站、搜索、个人资料与分享等功能。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
