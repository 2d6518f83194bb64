package directory

import "context"
import "net/http"
import "strconv"
import "time"

import "github.com/gorilla/mux"
import "github.com/gorilla/websocket"
import "github.com/redis/go-redis/v9"

import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== Event Hub


func NewEventHub(publishers ...EventPublisher) *EventHub {
	return &EventHub{
		subscribers: make(map[chan Event]bool),
		publishers: publishers,
		Log: *clog.NewCustomLog(NAME + "Events"),
	}
}

/*
	Publish:
		1.) stamp the event
		2.) hand it to every subscriber without blocking, a subscriber whose buffer is full misses the event
		3.) forward it to every external publisher
*/

func (hub *EventHub) Publish(ctx context.Context, event Event) {
	event.Timestamp = time.Now().Format(time.RFC3339Nano)

	hub.mutex.RLock()
	for sub := range hub.subscribers {
		select {
			case sub <- event:
			default:
				hub.Log.Warn("subscriber buffer full, dropping event", event.Kind)
		}
	}
	hub.mutex.RUnlock()

	for _, publisher := range hub.publishers {
		pubErr := publisher.Publish(ctx, event)
		if pubErr != nil { hub.Log.Error("error publishing event:", pubErr.Error()) }
	}
}

func (hub *EventHub) Subscribe() chan Event {
	sub := make(chan Event, SubscriberBuffer)

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	hub.subscribers[sub] = true
	return sub
}

func (hub *EventHub) Unsubscribe(sub chan Event) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	if hub.subscribers[sub] {
		delete(hub.subscribers, sub)
		close(sub)
	}
}


//=========================================== Redis Publisher


/*
	New Redis Publisher:
		connect and ping, directory events are published as json on the events channel
*/

func NewRedisPublisher(ctx context.Context, addr string) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{ Addr: addr })

	_, pingErr := client.Ping(ctx).Result()
	if pingErr != nil {
		client.Close()
		return nil, pingErr
	}

	return &RedisPublisher{ Client: client, Channel: EventsChannel }, nil
}

func (rp *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, encErr := utils.EncodeStructToString[Event](event)
	if encErr != nil { return encErr }

	return rp.Client.Publish(ctx, rp.Channel, payload).Err()
}

func (rp *RedisPublisher) Close() error {
	return rp.Client.Close()
}


//=========================================== Event Server (websocket)


func NewEventServer(directory *Directory) *EventServer {
	return &EventServer{
		Directory: directory,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

/*
	Router:
		GET /events    --> websocket feed of every directory event
		GET /statuses  --> current status of every peer as json
*/

func (es *EventServer) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/events", es.handleEvents).Methods(http.MethodGet)
	router.HandleFunc("/statuses", es.handleStatuses).Methods(http.MethodGet)

	return router
}

func (es *EventServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	ws, upgradeErr := es.upgrader.Upgrade(w, r, nil)
	if upgradeErr != nil {
		es.Directory.Log.Error("websocket upgrade failed:", upgradeErr.Error())
		return
	}

	defer ws.Close()

	sub := es.Directory.Events.Subscribe()
	defer es.Directory.Events.Unsubscribe(sub)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			_, _, readErr := ws.ReadMessage()
			if readErr != nil { return }
		}
	}()

	for {
		select {
			case <-closed:
				return
			case event, ok := <-sub:
				if ! ok { return }

				ws.SetWriteDeadline(time.Now().Add(WriteTimeout))
				writeErr := ws.WriteJSON(event)
				if writeErr != nil {
					es.Directory.Log.Warn("event subscriber disconnected:", writeErr.Error())
					return
				}
		}
	}
}

func (es *EventServer) handleStatuses(w http.ResponseWriter, r *http.Request) {
	statuses := es.Directory.ListStatuses()

	body := make(map[string]string, len(statuses))
	for port, status := range statuses { body[strconv.Itoa(port)] = status.String() }

	encoded, encErr := utils.EncodeStructToBytes[map[string]string](body)
	if encErr != nil {
		http.Error(w, encErr.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(encoded)
}
