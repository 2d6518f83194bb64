package main

import "bytes"
import cryptoRand "crypto/rand"
import "encoding/base64"
import "encoding/json"
import "flag"
import mathRand "math/rand"
import "net/http"
import "os"
import "strconv"
import "strings"
import "sync"
import "time"

import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/utils"


const NAME = "Simulate Client"
var Log = clog.NewCustomLog(NAME)

const CONTENT_TYPE = "application/json"
const STRING_LENGTH = 30
const SECTIONS = 4

type response struct {
	Code string `json:"code"`
	Message string `json:"message"`
	Token string `json:"token"`
}

type simClient struct {
	username string
	token string
	gateways []string
	http *http.Client
	rand *mathRand.Rand
}


/*
	simulate client:
		every simulated user signs up through a random replica gateway, creates a document and then repeatedly
		claims a random section and uploads new content, each request going to a random replica so
		transactions from different coordinators contend with each other

		outcome codes are tallied and logged at the end
*/

func main() {
	gatewaysFlag := flag.String("gateways", envOr("RDOC_GATEWAYS", "http://127.0.0.1:11300,http://127.0.0.1:11400,http://127.0.0.1:11500"), "comma separated replica gateway urls")
	clients := flag.Int("clients", 8, "simulated users")
	rounds := flag.Int("rounds", 20, "edit rounds per user")
	flag.Parse()

	gateways := strings.Split(*gatewaysFlag, ",")

	var tallyMutex sync.Mutex
	tally := make(map[string]int)
	record := func(code string) {
		tallyMutex.Lock()
		defer tallyMutex.Unlock()
		tally[code]++
	}

	var clientWG sync.WaitGroup

	for idx := 0; idx < *clients; idx++ {
		clientWG.Add(1)

		go func(idx int) {
			defer clientWG.Done()

			c := &simClient{
				username: "user" + strconv.Itoa(idx),
				gateways: gateways,
				http: &http.Client{ Timeout: 30 * time.Second },
				rand: mathRand.New(mathRand.NewSource(time.Now().UnixNano() + int64(idx))),
			}

			signupErr := c.signup()
			if signupErr != nil {
				Log.Error(c.username, "signup failed:", signupErr.Error())
				return
			}

			docName := c.username + "-doc"
			created, _ := c.send(http.MethodPost, "/documents", map[string]interface{}{ "name": docName, "sections": SECTIONS })
			if created != nil { record("create:" + created.Code) }

			for round := 0; round < *rounds; round++ {
				section := "/documents/" + docName + "/sections/" + strconv.Itoa(c.rand.Intn(SECTIONS))

				edit, editErr := c.send(http.MethodPost, section + "/edit", nil)
				if editErr != nil {
					Log.Warn(c.username, "edit request failed:", editErr.Error())
					continue
				}

				record("edit:" + edit.Code)
				if edit.Code != "OK" { continue }

				content, randErr := genRandomString(STRING_LENGTH)
				if randErr != nil { Log.Fatal("failed to generate random string:", randErr.Error()) }

				end, endErr := c.send(http.MethodPost, section + "/edit-end", map[string]string{ "content": content })
				if endErr == nil { record("edit-end:" + end.Code) }
			}
		}(idx)
	}

	clientWG.Wait()
	Log.Info("outcomes:", tally)
}

func (c *simClient) signup() error {
	password, randErr := genRandomString(12)
	if randErr != nil { return randErr }

	_, createErr := c.send(http.MethodPost, "/users", map[string]string{ "username": c.username, "password": password })
	if createErr != nil { return createErr }

	login, loginErr := c.send(http.MethodPost, "/sessions", map[string]string{ "username": c.username, "password": password })
	if loginErr != nil { return loginErr }

	c.token = login.Token
	return nil
}

// sends to a random gateway, every replica serves every user
func (c *simClient) send(method string, path string, body interface{}) (*response, error) {
	var payload []byte
	if body != nil {
		encoded, encErr := json.Marshal(body)
		if encErr != nil { return nil, encErr }
		payload = encoded
	}

	req, reqErr := http.NewRequest(method, c.gateways[c.rand.Intn(len(c.gateways))] + path, bytes.NewReader(payload))
	if reqErr != nil { return nil, reqErr }

	req.Header.Set("Content-Type", CONTENT_TYPE)
	req.Header.Set("X-Username", c.username)
	req.Header.Set("X-Token", c.token)

	r, respErr := c.http.Do(req)
	if respErr != nil { return nil, respErr }

	defer r.Body.Close()

	var res response
	decodeErr := json.NewDecoder(r.Body).Decode(&res)
	if decodeErr != nil { return nil, decodeErr }

	Log.Debug(c.username, method, path, res.Code)
	return &res, nil
}

func genRandomString(length int) (string, error) {
	bytesNeeded := (length * 6) / 8 + 1
	randomBytes := make([]byte, bytesNeeded)

	_, readErr := cryptoRand.Read(randomBytes)
	if readErr != nil { return utils.GetZero[string](), readErr }

	randomString := base64.RawURLEncoding.EncodeToString(randomBytes)
	return randomString[:length], nil
}

func envOr(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" { return fallback }

	return value
}
