package headers

import "net/http"

func SetUserAgent(request *http.Request) {
	request.Header.Set("User-Agent", "updatedns (https://github.com/updatedns/updatedns)")
}

func SetContentType(request *http.Request, contentType string) {
	request.Header.Set("Content-Type", contentType)
}

func SetAccept(request *http.Request, acceptContent string) {
	request.Header.Set("Accept", acceptContent)
}

func SetAuthBearer(request *http.Request, token string) {
	request.Header.Set("Authorization", "Bearer "+token)
}
