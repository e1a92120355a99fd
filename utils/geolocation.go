package utils

import (
	"elearn/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// GeoInfo is the subset of the geolocation response we keep
type GeoInfo struct {
	Status  string `json:"status"`
	Country string `json:"country"`
	City    string `json:"city"`
}

// LookupIP resolves an IP address to a country/city, best-effort. Failures
// return an empty GeoInfo so login tracking never blocks on the lookup.
func LookupIP(ip string) GeoInfo {
	if ip == "" {
		return GeoInfo{}
	}

	client := resty.New().SetTimeout(5 * time.Second)

	var info GeoInfo
	resp, err := client.R().
		SetResult(&info).
		Get(config.AppConfig.GeoApiURL + "/" + ip)
	if err != nil {
		log.Printf("Geolocation lookup failed for %s: %v", ip, err)
		return GeoInfo{}
	}
	if resp.IsError() || info.Status == "fail" {
		return GeoInfo{}
	}
	return info
}
