package data

import (
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/language_miner/app/display/internal/conf"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/store"
)

const defaultReportDir = "./output"

type Data struct {
	store *store.FileStore
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	dir := defaultReportDir
	if c != nil && c.Reports != nil && c.Reports.Dir != "" {
		dir = c.Reports.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to prepare report dir: %w", err)
	}
	log.NewHelper(logger).Infof("serving reports from %s", dir)

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
	}
	return &Data{store: store.NewFileStore(dir)}, cleanup, nil
}
