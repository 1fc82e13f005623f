package logger

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"SalesIngest/internal/config"
)

// LoggerService sends the standard logger to size-rotated files and zips
// files older than the retention window.
type LoggerService struct {
	mu            sync.Mutex
	file          *os.File
	currentLog    string
	seq           int
	stopCh        chan struct{}
	wg            sync.WaitGroup
	folderPath    string
	prefix        string
	maxFileBytes  int64
	retentionDays int
	echo          bool
}

// NewLoggerService reads folder_path, file_prefix, max_file_mb,
// retention_days and stdout from the services.yaml block.
func NewLoggerService(cfg map[string]interface{}) *LoggerService {
	echo, _ := cfg["stdout"].(bool)
	return &LoggerService{
		stopCh:        make(chan struct{}),
		folderPath:    config.String(cfg, "folder_path", "./logs"),
		prefix:        config.String(cfg, "file_prefix", "sales"),
		maxFileBytes:  int64(config.Int(cfg, "max_file_mb", 0)) * 1024 * 1024,
		retentionDays: config.Int(cfg, "retention_days", 0),
		echo:          echo,
	}
}

func (l *LoggerService) Name() string {
	return "logger"
}

func (l *LoggerService) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(l.folderPath, 0o755); err != nil {
		return err
	}
	if err := l.openNext(); err != nil {
		return err
	}
	log.Println("[LOGGER] writing to", l.currentLog)

	l.wg.Add(1)
	go l.backgroundWorker()
	return nil
}

func (l *LoggerService) Stop() error {
	close(l.stopCh)
	l.wg.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	log.Println("[LOGGER] stopping")
	log.SetOutput(os.Stderr)
	err := l.file.Close()
	l.file = nil
	return err
}

// openNext must be called with mu held.
func (l *LoggerService) openNext() error {
	l.seq++
	name := filepath.Join(l.folderPath, fmt.Sprintf("%s_%s_%03d.log", l.prefix, time.Now().Format("20060102_150405"), l.seq))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	l.currentLog = name
	var w io.Writer = f
	if l.echo {
		w = io.MultiWriter(os.Stdout, f)
	}
	log.SetOutput(w)
	return nil
}

func (l *LoggerService) rotateIfNeeded() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil || l.maxFileBytes <= 0 {
		return nil
	}
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < l.maxFileBytes {
		return nil
	}
	if err := l.openNext(); err != nil {
		return err
	}
	log.Println("[LOGGER] rotated to", l.currentLog)
	return nil
}

func (l *LoggerService) backgroundWorker() {
	defer l.wg.Done()
	rotate := time.NewTicker(10 * time.Second)
	retention := time.NewTicker(24 * time.Hour)
	defer rotate.Stop()
	defer retention.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case <-rotate.C:
			if err := l.rotateIfNeeded(); err != nil {
				log.Printf("[LOGGER] rotation failed: %v", err)
			}
		case <-retention.C:
			if _, err := l.archiveOldLogs(time.Now()); err != nil {
				log.Printf("[LOGGER] archiving failed: %v", err)
			}
		}
	}
}

// archiveOldLogs moves .log files last written before the retention window
// into a dated zip. The file currently written to is never archived.
func (l *LoggerService) archiveOldLogs(now time.Time) (int, error) {
	if l.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := now.AddDate(0, 0, -l.retentionDays)
	entries, err := os.ReadDir(l.folderPath)
	if err != nil {
		return 0, err
	}
	l.mu.Lock()
	current := l.currentLog
	l.mu.Unlock()

	var old []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		full := filepath.Join(l.folderPath, e.Name())
		info, err := e.Info()
		if err != nil || full == current || info.ModTime().After(cutoff) {
			continue
		}
		old = append(old, full)
	}
	if len(old) == 0 {
		return 0, nil
	}

	zipName := filepath.Join(l.folderPath, fmt.Sprintf("%s_logs_%s.zip", l.prefix, now.Format("20060102_150405")))
	zf, err := os.Create(zipName)
	if err != nil {
		return 0, err
	}
	zw := zip.NewWriter(zf)
	archived := 0
	for _, path := range old {
		if err := addToZip(zw, path); err != nil {
			continue
		}
		os.Remove(path)
		archived++
	}
	if err := zw.Close(); err != nil {
		zf.Close()
		return archived, err
	}
	return archived, zf.Close()
}

func addToZip(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

// LogAudit is safe to call before the logger service is registered.
func (l *LoggerService) LogAudit(msg string) {
	if l == nil {
		log.Printf("[AUDIT] %s", msg)
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	log.Printf("[AUDIT] %s", msg)
}

var GlobalLogger *LoggerService

func SetGlobalLogger(l *LoggerService) {
	GlobalLogger = l
}
