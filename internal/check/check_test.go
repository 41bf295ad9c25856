package check

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/longexposure/internal/config"
)

type recLogger struct {
	lines []string
}

func (r *recLogger) add(level, format string, args ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recLogger) Success(f string, a ...interface{}) { r.add("OK", f, a...) }
func (r *recLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		r.add("DEBUG", f, a...)
	}
}

func stubTools(t *testing.T, present map[string]bool) {
	t.Helper()
	origLook, origOut := lookPath, output
	t.Cleanup(func() { lookPath, output = origLook, origOut })

	lookPath = func(name string) (string, error) {
		if present[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	output = func(name string, args ...string) ([]byte, error) {
		if !present[name] {
			return nil, errors.New("not found")
		}
		return []byte(name + " version 6.1\nbuilt with gcc"), nil
	}
}

func TestCheckDeps(t *testing.T) {
	tests := []struct {
		name    string
		present map[string]bool
		want    error
	}{
		{"both present", map[string]bool{"ffmpeg": true, "ffprobe": true}, nil},
		{"no ffmpeg", map[string]bool{"ffprobe": true}, ErrFfmpegNotFound},
		{"no ffprobe", map[string]bool{"ffmpeg": true}, ErrFfprobeNotFound},
		{"neither", map[string]bool{}, ErrFfmpegNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTools(t, tt.present)
			assert.Equal(t, tt.want, CheckDeps())
		})
	}
}

func TestRunCheck_AllPresent(t *testing.T) {
	stubTools(t, map[string]bool{"ffmpeg": true, "ffprobe": true})
	cfg := config.DefaultConfig()
	log := &recLogger{}

	assert.Zero(t, RunCheck(&cfg, log))
	assert.Contains(t, log.lines, "OK ffmpeg: ffmpeg version 6.1")
	assert.Contains(t, log.lines, "OK ffprobe: ffprobe version 6.1")
	assert.Contains(t, log.lines, "INFO Extensions: .mp4 .avi .mov .mkv")
}

func TestRunCheck_MissingTools(t *testing.T) {
	stubTools(t, map[string]bool{})
	cfg := config.DefaultConfig()
	log := &recLogger{}

	assert.Equal(t, 3, RunCheck(&cfg, log))
	assert.Contains(t, log.lines, "ERROR ffmpeg not found")
	assert.Contains(t, log.lines, "ERROR ffprobe not found")
}
