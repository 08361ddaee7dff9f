package ringqueue_test

import (
	"errors"
	"fmt"
	"slices"

	rqerrors "github.com/c360/ringqueue/errors"
	"github.com/c360/ringqueue/pkg/ringqueue"
)

func Example() {
	q, err := ringqueue.New[string]()
	if err != nil {
		panic(err)
	}

	_ = q.Enqueue("first")
	_ = q.Enqueue("second")
	_ = q.Enqueue("third") // grows from 2 to 4 slots

	for !q.Empty() {
		v, _ := q.Dequeue()
		fmt.Println(v)
	}

	_, err = q.Dequeue()
	fmt.Println(errors.Is(err, rqerrors.ErrEmptyQueue))
	// Output:
	// first
	// second
	// third
	// true
}

func ExampleRingQueue_Resize() {
	q, _ := ringqueue.FromSlice([]string{"a", "b", "c", "d"},
		ringqueue.WithTruncateCallback[string](func(s string) { fmt.Println("dropped", s) }),
	)

	_ = q.Resize(2)
	fmt.Println(q.Values())
	// Output:
	// dropped c
	// dropped d
	// [a b]
}

func ExampleFind() {
	q, _ := ringqueue.FromSlice([]int{3, 1, 4, 1, 5})

	it := ringqueue.Find(q, 4)
	_ = it.Set(40)

	fmt.Println(slices.Collect(q.All()))
	fmt.Println(ringqueue.Find(q, 9).Equal(q.End()))
	// Output:
	// [3 1 40 1 5]
	// true
}
