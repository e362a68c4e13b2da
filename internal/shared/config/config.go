package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Load 加载 YAML 配置到 out，并监听文件变更热更新。
//
// 约定：
// 1) 传入绝对路径则直接使用；
// 2) 相对路径从当前目录开始向上逐级查找（便于在任意子目录下启动/跑测试）。
func Load(cfgPath string, out any) {
	if cfgPath == "" {
		panic("config path is empty")
	}
	if !filepath.IsAbs(cfgPath) {
		curDir, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		cfgPath = findConfigUpward(curDir, cfgPath)
	}
	load(cfgPath, out)
}

func findConfigUpward(startDir, relPath string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic(fmt.Sprintf("config file not exist, searched %s from: %s", relPath, startDir))
		}
		dir = parent
	}
}

func load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.OnConfigChange(func(e fsnotify.Event) {
		// 热更新：解析失败保留旧配置，不中断服务。
		_ = v.Unmarshal(out)
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(out); err != nil {
		panic(err)
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
