package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/config"
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

var errUnsupportedMailType = errors.New("unsupported mail type")

// envelope 与 domain.MailMessage 相同，只是延迟解析 data 字段
type envelope struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

type composer struct {
	from      string
	templates map[string]*template.Template
}

func newComposer(from string, dir string) (*composer, error) {
	tmpl, err := template.ParseFiles(dir + "/new_account_email.html")
	if err != nil {
		return nil, err
	}

	return &composer{
		from: from,
		templates: map[string]*template.Template{
			domain.MailTypeCreateUser: tmpl,
		},
	}, nil
}

// compose 把队列中的消息转换为邮件，返回的错误都不值得重试
func (c *composer) compose(body []byte) (*mail.Msg, error) {
	env := envelope{}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(c.from); err != nil {
		return nil, err
	}
	if err := m.To(env.To); err != nil {
		return nil, err
	}

	switch env.Type {
	case domain.MailTypeCreateUser:
		data := domain.CreateUserMailData{}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, err
		}
		if err := m.SetBodyHTMLTemplate(c.templates[env.Type], data); err != nil {
			return nil, err
		}
		m.Subject("Field Workforce - Account created")
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedMailType, env.Type)
	}

	return m, nil
}

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	c, err := newComposer(cfg.Email.SMTP.Username, "./templates")
	if err != nil {
		logger.Error("无法解析邮件模板", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 创建邮件客户端
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("无法创建邮件客户端", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// 验证邮件客户端是否连接成功
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("无法连接到邮件服务器", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.Queue,
		true,  // 持久化
		false, // 没有消费者时不自动删除
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 手动确认，发送失败的消息可以重新入队
	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		logger.Error("无法消费消息", slog.String("error", err.Error()))
		return
	}

	ctx, stop := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("消息通道已关闭")
					return
				}

				m, err := c.compose(msg.Body)
				if err != nil {
					logger.Error("无法构建邮件", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("邮件发送失败", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // 将消息重新入队
					continue
				}

				_ = msg.Ack(false)
				logger.Info("邮件已发送", slog.String("to", m.GetToString()[0]))
			}
		}
	}()

	logger.Info("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	logger.Info("正在关闭 mail worker...")
	stop()
	wg.Wait()
	logger.Info("mail worker 已成功关闭")
}
