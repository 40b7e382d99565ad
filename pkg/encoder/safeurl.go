package encoder

import (
	"fmt"
	"net"
	"net/url"
)

// lookupIP はテストで差し替えられるように変数にしています。
var lookupIP = net.LookupIP

// IsSafeURL は、SSRF (Server-Side Request Forgery) 対策として URL を検証します。
// 許可されたスキーム (http, https) かつ、名前解決されたすべての IP が
// プライベート、ループバック、リンクローカルではないことを確認します。
func IsSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolved, err := lookupIP(host)
		if err != nil {
			return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", host, err)
		}
		ips = resolved
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません: %s", host)
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
