// Package version 记录 hfproof 的构建版本
//
// Version、Commit、BuildTime 由 -ldflags "-X" 注入；未注入时从模块构建信息补全。
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Version   = "v0.0.1"
	Commit    = ""
	BuildTime = ""
)

// Info 版本信息
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Platform  string `json:"platform"`
	GoVersion string `json:"go_version"`
}

// Get 汇总版本信息
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// String 多行文本，供 version 命令输出
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "hfproof %s", i.Version)
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&b, " (%s)", commit)
	}
	if i.BuildTime != "" {
		fmt.Fprintf(&b, "\nbuilt: %s", i.BuildTime)
	}
	fmt.Fprintf(&b, "\n%s %s", i.GoVersion, i.Platform)
	return b.String()
}
