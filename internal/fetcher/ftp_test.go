package fetcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFTPURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantHost string
		wantPath string
		wantErr  bool
	}{
		{
			name:     "standard ftp url",
			url:      "ftp://ftp.ic.gc.ca/pub/spectrum/dump.txt",
			wantHost: "ftp.ic.gc.ca:21",
			wantPath: "/pub/spectrum/dump.txt",
		},
		{
			name:     "explicit port",
			url:      "ftp://mirror.example.com:2121/data/dump.txt",
			wantHost: "mirror.example.com:2121",
			wantPath: "/data/dump.txt",
		},
		{
			name:    "http scheme rejected",
			url:     "http://example.com/dump.txt",
			wantErr: true,
		},
		{
			name:    "empty path",
			url:     "ftp://ftp.example.com",
			wantErr: true,
		},
		{
			name:    "invalid url",
			url:     "://bad",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, path, err := parseFTPURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestNewFTPFetcher_DefaultTimeout(t *testing.T) {
	f := NewFTPFetcher(FTPOptions{})
	assert.Equal(t, 60*time.Second, f.opts.Timeout)
}
