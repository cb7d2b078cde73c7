package services

import (
	"errors"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
)

// GeoLookup resolves a client IP to a location. Empty values mean unknown.
type GeoLookup interface {
	Lookup(ip string) (country, city string)
}

// NoopGeoLookup is used when no geo database is configured.
type NoopGeoLookup struct{}

func (NoopGeoLookup) Lookup(string) (string, string) { return "", "" }

type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Metadata() maxminddb.Metadata
	Close() error
}

// GeoIPService answers lookups from a MaxMind City database.
type GeoIPService struct {
	logger    *slog.Logger
	geoReader cityReader
	geoLock   sync.RWMutex
}

func NewGeoIPService(logger *slog.Logger) *GeoIPService {
	return &GeoIPService{logger: logger}
}

// Open loads the database at path, replacing any reader already held.
func (s *GeoIPService) Open(path string) error {
	if path == "" {
		return errors.New("geoip: database path not set")
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		return err
	}

	s.geoLock.Lock()
	old := s.geoReader
	s.geoReader = reader
	s.geoLock.Unlock()

	if old != nil {
		old.Close()
	}

	if meta, ok := s.DatabaseInfo(); ok {
		s.logger.Info("GeoIP: Loaded database", "path", path, "type", meta.DatabaseType, "epoch", meta.BuildEpoch)
	}
	return nil
}

// DatabaseInfo reports the metadata of the loaded database, if any.
func (s *GeoIPService) DatabaseInfo() (maxminddb.Metadata, bool) {
	s.geoLock.RLock()
	defer s.geoLock.RUnlock()

	if s.geoReader == nil {
		return maxminddb.Metadata{}, false
	}
	return s.geoReader.Metadata(), true
}

func (s *GeoIPService) Close() error {
	s.geoLock.Lock()
	defer s.geoLock.Unlock()

	if s.geoReader == nil {
		return nil
	}
	err := s.geoReader.Close()
	s.geoReader = nil
	return err
}

func (s *GeoIPService) Lookup(ipStr string) (country, city string) {
	if ipStr == "127.0.0.1" || ipStr == "::1" {
		return "Localhost", "Local"
	}

	s.geoLock.RLock()
	defer s.geoLock.RUnlock()

	if s.geoReader == nil {
		return "", ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "", ""
	}

	record, err := s.geoReader.City(ip)
	if err != nil {
		s.logger.Error("GeoIP: Lookup error", "ip", ipStr, "error", err)
		return "", ""
	}

	if name, ok := record.Country.Names["en"]; ok {
		country = name
	} else {
		country = record.Country.IsoCode
	}

	if name, ok := record.City.Names["en"]; ok {
		city = name
	}

	return country, city
}

// NewGeoLookup opens path when possible and falls back to NoopGeoLookup.
func NewGeoLookup(path string, logger *slog.Logger) GeoLookup {
	svc := NewGeoIPService(logger)
	if err := svc.Open(path); err != nil {
		logger.Warn("GeoIP: database unavailable, lookups disabled", "path", path, "error", err)
		return NoopGeoLookup{}
	}
	return svc
}
